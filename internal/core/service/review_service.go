package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

// Deduper guards against double-submitting the same ficha (Redis-backed).
type Deduper interface {
	IsDuplicate(ctx context.Context, worker, identityCode, date string) (bool, error)
	Mark(ctx context.Context, worker, identityCode, date string) error
}

// ReviewService validates and persists screening outcomes and expert
// verdicts. Screening batches are atomic; verdicts are processed per item.
type ReviewService struct {
	repo        ports.ReviewRepository
	assignments ports.AssignmentService
	dedup       Deduper
	log         zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, assignments ports.AssignmentService, dedup Deduper, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, assignments: assignments, dedup: dedup, log: log}
}

// SubmitScreenings persists one analyst sitting as a single transaction:
// outcomes, assignment completions, escalations, and history rows commit or
// roll back together. Validation runs before any storage is touched.
func (s *ReviewService) SubmitScreenings(ctx context.Context, worker string, items []ports.ScreeningInput) (ports.ScreeningReceipt, error) {
	var receipt ports.ScreeningReceipt
	if len(items) == 0 {
		return receipt, nil
	}

	now := time.Now().UTC()
	var batch ports.ScreeningBatch
	type dedupKey struct{ identityCode, date string }
	var marks []dedupKey

	for _, item := range items {
		if item.Conforms == nil {
			return ports.ScreeningReceipt{}, fmt.Errorf("ficha %s: %w", item.IdentityCode, domain.ErrMissingDisposition)
		}

		isDup, err := s.dedup.IsDuplicate(ctx, worker, item.IdentityCode, item.Date)
		if err != nil {
			s.log.Warn().Err(err).Str("dni", item.IdentityCode).Msg("dedup check failed, processing anyway")
		} else if isDup {
			s.log.Debug().Str("dni", item.IdentityCode).Str("worker", worker).Msg("duplicate screening skipped")
			continue
		}

		batch.Outcomes = append(batch.Outcomes, domain.ScreeningOutcome{
			Date:         item.Date,
			Worker:       worker,
			Organization: item.Organization,
			Shift:        item.Shift,
			StartTime:    item.StartTime,
			EndTime:      item.EndTime,
			FormNumber:   item.FormNumber,
			IdentityCode: item.IdentityCode,
			Conforms:     *item.Conforms,
			Escalate:     item.Escalate,
			Notes:        item.Notes,
			Timestamp:    now,
		})
		batch.Completions = append(batch.Completions, ports.CompletionKey{
			IdentityCode: item.IdentityCode,
			Organization: item.Organization,
			WorkType:     domain.WorkScreening,
		})
		batch.History = append(batch.History, domain.StateHistory{
			IdentityCode: item.IdentityCode,
			FormNumber:   item.FormNumber,
			Organization: item.Organization,
			PriorState:   domain.StateAssignedAnalyst,
			NewState:     domain.StateScreened,
			Actor:        worker,
			Timestamp:    now,
		})

		if item.Escalate {
			receipt.Escalated++
			esc, err := s.assignments.Escalate(ctx, item.IdentityCode, item.FormNumber, item.Organization)
			if err != nil {
				return ports.ScreeningReceipt{}, err
			}
			if esc != nil {
				batch.Escalations = append(batch.Escalations, *esc)
				batch.History = append(batch.History, domain.StateHistory{
					IdentityCode: item.IdentityCode,
					FormNumber:   item.FormNumber,
					Organization: item.Organization,
					PriorState:   domain.StateScreened,
					NewState:     domain.StateAssignedExpert,
					Actor:        worker,
					Timestamp:    now,
				})
			}
		}

		marks = append(marks, dedupKey{item.IdentityCode, item.Date})
	}

	if len(batch.Outcomes) == 0 {
		return ports.ScreeningReceipt{}, nil
	}

	if err := s.repo.SubmitScreeningBatch(ctx, batch); err != nil {
		s.log.Error().Err(err).Str("worker", worker).Msg("screening batch failed, rolled back")
		return ports.ScreeningReceipt{}, err
	}

	// Dedup keys are set only after the commit so a rollback strands none.
	for _, k := range marks {
		if err := s.dedup.Mark(ctx, worker, k.identityCode, k.date); err != nil {
			s.log.Warn().Err(err).Str("dni", k.identityCode).Msg("failed to set dedup key")
		}
	}

	s.log.Info().
		Str("worker", worker).
		Int("outcomes", len(batch.Outcomes)).
		Int("escalations", len(batch.Escalations)).
		Msg("screening batch recorded")
	receipt.Recorded = len(batch.Outcomes)
	return receipt, nil
}

// SubmitVerdicts persists verdicts one by one. An invalid or failed item is
// rejected individually; the rest of the batch still proceeds.
func (s *ReviewService) SubmitVerdicts(ctx context.Context, worker string, items []ports.VerdictInput) ([]ports.VerdictResult, error) {
	results := make([]ports.VerdictResult, 0, len(items))
	now := time.Now().UTC()

	for _, item := range items {
		verdict := domain.ExpertVerdict{
			Date:         item.Date,
			Worker:       worker,
			Organization: item.Organization,
			TransitTime:  item.TransitTime,
			StartTime:    item.StartTime,
			EndTime:      item.EndTime,
			IdentityCode: item.IdentityCode,
			FormNumber:   item.FormNumber,
			Authentic:    item.Authentic,
			Forged:       item.Forged,
			MinutesSpent: item.MinutesSpent,
			Notes:        item.Notes,
			Report:       item.Report,
			Timestamp:    now,
		}

		if err := verdict.Validate(); err != nil {
			results = append(results, ports.VerdictResult{IdentityCode: item.IdentityCode, Error: err.Error()})
			continue
		}

		submission := ports.VerdictSubmission{
			Verdict: verdict,
			Completion: ports.CompletionKey{
				IdentityCode: item.IdentityCode,
				Organization: item.Organization,
				WorkType:     domain.WorkExpertReview,
			},
			History: domain.StateHistory{
				IdentityCode: item.IdentityCode,
				FormNumber:   item.FormNumber,
				Organization: item.Organization,
				PriorState:   domain.StateAssignedExpert,
				NewState:     domain.StateVerdictIssued,
				Actor:        worker,
				Timestamp:    now,
			},
		}
		if err := s.repo.SubmitVerdict(ctx, submission); err != nil {
			s.log.Error().Err(err).Str("dni", item.IdentityCode).Str("worker", worker).Msg("verdict persistence failed")
			results = append(results, ports.VerdictResult{IdentityCode: item.IdentityCode, Error: "storage failure"})
			continue
		}

		results = append(results, ports.VerdictResult{IdentityCode: item.IdentityCode, Accepted: true})
	}

	return results, nil
}
