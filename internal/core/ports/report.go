package ports

import "context"

// WorkerAggregate summarises one worker's recorded outcomes. The flag sums
// mean different things per table: conforming/escalated for analysts,
// authentic/forged for experts. AvgMinutes is only populated for experts.
type WorkerAggregate struct {
	Worker     string  `json:"worker"`
	Count      int     `json:"count"`
	Conforming int     `json:"conforming,omitempty"`
	Escalated  int     `json:"escalated,omitempty"`
	Authentic  int     `json:"authentic,omitempty"`
	Forged     int     `json:"forged,omitempty"`
	AvgMinutes float64 `json:"avg_minutes,omitempty"`
}

// ProgressSummary is the overall completion snapshot. TotalRecords is a
// configured constant, not the live catalog size.
type ProgressSummary struct {
	Screenings   int     `json:"screenings"`
	Verdicts     int     `json:"verdicts"`
	Completed    int     `json:"completed"`
	TotalRecords int     `json:"total_records"`
	Percentage   float64 `json:"percentage"`
}

// ReportRepository reads aggregate views over the outcome tables.
type ReportRepository interface {
	ScreeningAggregates(ctx context.Context) ([]WorkerAggregate, error)
	VerdictAggregates(ctx context.Context) ([]WorkerAggregate, error)
	OutcomeCounts(ctx context.Context) (screenings, verdicts int, err error)
}

// SnapshotWriter serialises aggregates to an external spreadsheet and
// returns the generated file path.
type SnapshotWriter interface {
	WriteSnapshot(analysts, experts []WorkerAggregate, summary *ProgressSummary) (string, error)
}

// ReportService computes progress aggregates and exports snapshots.
type ReportService interface {
	WorkerAggregates(ctx context.Context) (analysts, experts []WorkerAggregate, err error)
	OverallProgress(ctx context.Context) (*ProgressSummary, error)
	ExportSnapshot(ctx context.Context) (string, error)
}
