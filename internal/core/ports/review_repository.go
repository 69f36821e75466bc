package ports

import (
	"context"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// CompletionKey identifies the active assignment to mark completed.
type CompletionKey struct {
	IdentityCode string
	Organization string
	WorkType     domain.WorkType
}

// ScreeningBatch is everything one screening submission writes. The whole
// batch commits or rolls back as a single transaction.
type ScreeningBatch struct {
	Outcomes    []domain.ScreeningOutcome
	Escalations []domain.Assignment
	Completions []CompletionKey
	History     []domain.StateHistory
}

// VerdictSubmission is everything one expert verdict writes. Each verdict is
// its own small transaction; failures affect only that item.
type VerdictSubmission struct {
	Verdict    domain.ExpertVerdict
	Completion CompletionKey
	History    domain.StateHistory
}

// ReviewRepository persists review outcomes together with their assignment
// completions and audit rows.
type ReviewRepository interface {
	SubmitScreeningBatch(ctx context.Context, batch ScreeningBatch) error
	SubmitVerdict(ctx context.Context, submission VerdictSubmission) error
}
