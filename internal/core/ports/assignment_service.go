package ports

import (
	"context"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// BulkAssignInput carries the parameters of a bulk screening assignment.
type BulkAssignInput struct {
	OrgCode  string
	Count    int
	Worker   string
	WorkType domain.WorkType
}

// AssignmentService is the workflow core: it owns the assignment lifecycle
// and the deterministic distribution of escalated work across experts.
type AssignmentService interface {
	// BulkAssign selects up to Count catalog records for the organization
	// that have no active assignment of the given work type, in catalog
	// order, and assigns them to Worker. Returns the number created.
	BulkAssign(ctx context.Context, input BulkAssignInput) (int, error)
	// Escalate picks the target expert for an identity code and returns the
	// expert-review assignment to persist. The pick is deterministic for a
	// fixed roster. Returns nil (no error) when the expert pool is empty.
	Escalate(ctx context.Context, identityCode, formNumber, orgLabel string) (*domain.Assignment, error)
	MarkCompleted(ctx context.Context, identityCode, organization string, workType domain.WorkType) error
	PendingFor(ctx context.Context, workerID int64, workType domain.WorkType) ([]domain.Assignment, error)
}
