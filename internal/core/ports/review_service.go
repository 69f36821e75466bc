package ports

import "context"

// ScreeningInput is one analyst decision within a screening submission.
// Conforms is a pointer so that a missing disposition can be told apart from
// an explicit "no".
type ScreeningInput struct {
	Date         string
	Organization string
	Shift        string
	StartTime    string
	EndTime      string
	FormNumber   string
	IdentityCode string
	Conforms     *bool
	Escalate     bool
	Notes        string
}

// VerdictInput is one expert verdict within a submission.
type VerdictInput struct {
	Date         string
	Organization string
	TransitTime  string
	StartTime    string
	EndTime      string
	IdentityCode string
	FormNumber   string
	Authentic    bool
	Forged       bool
	MinutesSpent int
	Notes        string
	Report       string
}

// ScreeningReceipt summarises what a screening submission actually stored.
// Recorded may be lower than the number of submitted items when duplicates
// were skipped; Escalated counts recorded outcomes flagged for expert review.
type ScreeningReceipt struct {
	Recorded  int `json:"recorded"`
	Escalated int `json:"escalated"`
}

// VerdictResult reports the per-item outcome of a verdict submission.
type VerdictResult struct {
	IdentityCode string `json:"dni"`
	Accepted     bool   `json:"accepted"`
	Error        string `json:"error,omitempty"`
}

// ReviewService validates and persists screening outcomes and expert
// verdicts, escalating flagged items and completing assignments.
type ReviewService interface {
	// SubmitScreenings persists a screening batch atomically and returns a
	// receipt of what was stored. Any validation or storage failure leaves
	// no partial rows.
	SubmitScreenings(ctx context.Context, worker string, items []ScreeningInput) (ScreeningReceipt, error)
	// SubmitVerdicts persists verdicts one by one; invalid items are rejected
	// individually while the rest proceed.
	SubmitVerdicts(ctx context.Context, worker string, items []VerdictInput) ([]VerdictResult, error)
}
