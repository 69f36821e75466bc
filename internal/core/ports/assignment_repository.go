package ports

import (
	"context"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// AssignmentRepository persists work assignments.
type AssignmentRepository interface {
	// CreateBatch inserts assignments, silently skipping any that would
	// duplicate an active assignment of the same work type for the same
	// identity code. Returns the number actually created.
	CreateBatch(ctx context.Context, assignments []domain.Assignment) (int, error)
	// ActiveIdentityCodes returns the identity codes that currently carry an
	// active assignment of the given work type.
	ActiveIdentityCodes(ctx context.Context, workType domain.WorkType) (map[string]struct{}, error)
	// PendingFor returns the worker's active assignments in creation order.
	PendingFor(ctx context.Context, workerID int64, workType domain.WorkType) ([]domain.Assignment, error)
	// MarkCompleted flags the matching active assignment as completed.
	// A missing match is a no-op, not an error.
	MarkCompleted(ctx context.Context, identityCode, organization string, workType domain.WorkType) error
}
