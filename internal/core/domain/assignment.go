package domain

import "time"

// WorkType distinguishes the two kinds of work items: first-pass screening by
// an analyst and authenticity review by an expert.
type WorkType string

const (
	WorkScreening    WorkType = "analista"
	WorkExpertReview WorkType = "perito"
)

// Record lifecycle states, written to the audit trail on each transition.
const (
	StateAssignedAnalyst = "asignado_analista"
	StateScreened        = "revisado_analista"
	StateAssignedExpert  = "asignado_perito"
	StateVerdictIssued   = "peritaje_emitido"
)

// Assignment links a catalog record to a worker and a work type. At most one
// active (Completed=false) assignment may exist per (identity code, work type)
// pair; inserts that would violate this are skipped, not failed.
type Assignment struct {
	ID           int64     `json:"id"`
	IdentityCode string    `json:"dni"`
	FormNumber   string    `json:"num_fic"`
	Organization string    `json:"partido"`
	AssignedTo   string    `json:"assigned_to"`
	WorkType     WorkType  `json:"work_type"`
	AssignedAt   time.Time `json:"assigned_at"`
	Completed    bool      `json:"completed"`
}

// StateHistory is one immutable audit row recording a lifecycle transition.
type StateHistory struct {
	ID           int64     `json:"id"`
	IdentityCode string    `json:"dni"`
	FormNumber   string    `json:"num_fic"`
	Organization string    `json:"partido"`
	PriorState   string    `json:"prior_state"`
	NewState     string    `json:"new_state"`
	Actor        string    `json:"actor"`
	Timestamp    time.Time `json:"timestamp"`
}
