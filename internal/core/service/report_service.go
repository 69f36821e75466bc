package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jneverifica/firmas-system/internal/core/ports"
)

// ReportService computes per-worker aggregates and overall progress, and
// serialises snapshots through the configured writer.
type ReportService struct {
	repo         ports.ReportRepository
	writer       ports.SnapshotWriter
	totalRecords int
	log          zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, writer ports.SnapshotWriter, totalRecords int, log zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, writer: writer, totalRecords: totalRecords, log: log}
}

func (s *ReportService) WorkerAggregates(ctx context.Context) (analysts, experts []ports.WorkerAggregate, err error) {
	analysts, err = s.repo.ScreeningAggregates(ctx)
	if err != nil {
		return nil, nil, err
	}
	experts, err = s.repo.VerdictAggregates(ctx)
	if err != nil {
		return nil, nil, err
	}
	return analysts, experts, nil
}

// OverallProgress reports completion against the configured total, not the
// live catalog size.
func (s *ReportService) OverallProgress(ctx context.Context) (*ports.ProgressSummary, error) {
	screenings, verdicts, err := s.repo.OutcomeCounts(ctx)
	if err != nil {
		return nil, err
	}

	completed := screenings + verdicts
	var pct float64
	if s.totalRecords > 0 {
		pct = float64(completed) / float64(s.totalRecords) * 100
	}

	return &ports.ProgressSummary{
		Screenings:   screenings,
		Verdicts:     verdicts,
		Completed:    completed,
		TotalRecords: s.totalRecords,
		Percentage:   pct,
	}, nil
}

func (s *ReportService) ExportSnapshot(ctx context.Context) (string, error) {
	analysts, experts, err := s.WorkerAggregates(ctx)
	if err != nil {
		return "", err
	}
	summary, err := s.OverallProgress(ctx)
	if err != nil {
		return "", err
	}

	file, err := s.writer.WriteSnapshot(analysts, experts, summary)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("file", file).Msg("snapshot exported")
	return file, nil
}
