package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

type stubReviewRepo struct {
	batches  []ports.ScreeningBatch
	verdicts []ports.VerdictSubmission
	fail     error
}

func (r *stubReviewRepo) SubmitScreeningBatch(ctx context.Context, batch ports.ScreeningBatch) error {
	if r.fail != nil {
		return r.fail
	}
	r.batches = append(r.batches, batch)
	return nil
}

func (r *stubReviewRepo) SubmitVerdict(ctx context.Context, submission ports.VerdictSubmission) error {
	if r.fail != nil {
		return r.fail
	}
	r.verdicts = append(r.verdicts, submission)
	return nil
}

type stubEscalator struct {
	target string // empty means no experts available
}

func (s *stubEscalator) BulkAssign(ctx context.Context, input ports.BulkAssignInput) (int, error) {
	return 0, nil
}

func (s *stubEscalator) Escalate(ctx context.Context, identityCode, formNumber, orgLabel string) (*domain.Assignment, error) {
	if s.target == "" {
		return nil, nil
	}
	return &domain.Assignment{
		IdentityCode: identityCode,
		FormNumber:   formNumber,
		Organization: orgLabel,
		AssignedTo:   s.target,
		WorkType:     domain.WorkExpertReview,
	}, nil
}

func (s *stubEscalator) MarkCompleted(ctx context.Context, identityCode, organization string, workType domain.WorkType) error {
	return nil
}

func (s *stubEscalator) PendingFor(ctx context.Context, workerID int64, workType domain.WorkType) ([]domain.Assignment, error) {
	return nil, nil
}

type stubDeduper struct {
	seen   map[string]bool
	marked []string
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{seen: make(map[string]bool)}
}

func (d *stubDeduper) IsDuplicate(ctx context.Context, worker, identityCode, date string) (bool, error) {
	return d.seen[worker+":"+identityCode+":"+date], nil
}

func (d *stubDeduper) Mark(ctx context.Context, worker, identityCode, date string) error {
	d.marked = append(d.marked, worker+":"+identityCode+":"+date)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func screeningItem(dni string, conforms, escalate bool) ports.ScreeningInput {
	return ports.ScreeningInput{
		Date:         "2026-02-10",
		Organization: "Partido 1",
		Shift:        "mañana",
		FormNumber:   "F-" + dni,
		IdentityCode: dni,
		Conforms:     boolPtr(conforms),
		Escalate:     escalate,
	}
}

func TestReviewService_SubmitScreenings_BatchWithEscalation(t *testing.T) {
	repo := &stubReviewRepo{}
	dedup := newStubDeduper()
	svc := NewReviewService(repo, &stubEscalator{target: "pedro"}, dedup, zerolog.Nop())

	items := []ports.ScreeningInput{
		screeningItem("40000001", true, false),
		screeningItem("40000002", false, true),
	}

	receipt, err := svc.SubmitScreenings(context.Background(), "ana", items)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Recorded != 2 {
		t.Fatalf("expected 2 recorded, got %d", receipt.Recorded)
	}
	if receipt.Escalated != 1 {
		t.Fatalf("expected 1 escalated, got %d", receipt.Escalated)
	}

	if len(repo.batches) != 1 {
		t.Fatalf("expected a single batch, got %d", len(repo.batches))
	}
	batch := repo.batches[0]

	if len(batch.Outcomes) != 2 || len(batch.Completions) != 2 {
		t.Fatalf("unexpected batch shape: %+v", batch)
	}
	if len(batch.Escalations) != 1 || batch.Escalations[0].AssignedTo != "pedro" {
		t.Fatalf("expected one escalation to pedro, got %+v", batch.Escalations)
	}

	// Two screened transitions plus one escalation transition.
	if len(batch.History) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(batch.History))
	}
	last := batch.History[2]
	if last.PriorState != domain.StateScreened || last.NewState != domain.StateAssignedExpert {
		t.Fatalf("unexpected escalation transition: %s -> %s", last.PriorState, last.NewState)
	}

	// Dedup keys only after the batch committed.
	if len(dedup.marked) != 2 {
		t.Fatalf("expected 2 dedup marks, got %d", len(dedup.marked))
	}
}

func TestReviewService_SubmitScreenings_MissingDisposition(t *testing.T) {
	repo := &stubReviewRepo{}
	dedup := newStubDeduper()
	svc := NewReviewService(repo, &stubEscalator{target: "pedro"}, dedup, zerolog.Nop())

	items := []ports.ScreeningInput{
		screeningItem("40000001", true, false),
		{Date: "2026-02-10", Organization: "Partido 1", FormNumber: "F-2", IdentityCode: "40000002"},
	}

	_, err := svc.SubmitScreenings(context.Background(), "ana", items)
	if !errors.Is(err, domain.ErrMissingDisposition) {
		t.Fatalf("expected ErrMissingDisposition, got %v", err)
	}
	if len(repo.batches) != 0 {
		t.Fatalf("invalid batch must not reach storage")
	}
	if len(dedup.marked) != 0 {
		t.Fatalf("no dedup keys on a rejected batch")
	}
}

func TestReviewService_SubmitScreenings_SkipsDuplicates(t *testing.T) {
	repo := &stubReviewRepo{}
	dedup := newStubDeduper()
	dedup.seen["ana:40000001:2026-02-10"] = true
	svc := NewReviewService(repo, &stubEscalator{target: "pedro"}, dedup, zerolog.Nop())

	// The duplicate is flagged for escalation; a skipped item must count
	// toward neither total.
	items := []ports.ScreeningInput{
		screeningItem("40000001", false, true),
		screeningItem("40000002", true, false),
	}

	receipt, err := svc.SubmitScreenings(context.Background(), "ana", items)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Recorded != 1 {
		t.Fatalf("expected 1 recorded, got %d", receipt.Recorded)
	}
	if receipt.Escalated != 0 {
		t.Fatalf("skipped duplicate counted as escalated: %d", receipt.Escalated)
	}
	if repo.batches[0].Outcomes[0].IdentityCode != "40000002" {
		t.Fatalf("wrong item recorded: %+v", repo.batches[0].Outcomes)
	}
}

func TestReviewService_SubmitScreenings_AllDuplicates(t *testing.T) {
	repo := &stubReviewRepo{}
	dedup := newStubDeduper()
	dedup.seen["ana:40000001:2026-02-10"] = true
	svc := NewReviewService(repo, &stubEscalator{}, dedup, zerolog.Nop())

	receipt, err := svc.SubmitScreenings(context.Background(), "ana", []ports.ScreeningInput{
		screeningItem("40000001", true, false),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Recorded != 0 || len(repo.batches) != 0 {
		t.Fatalf("expected empty no-op, got %d recorded", receipt.Recorded)
	}
}

func TestReviewService_SubmitScreenings_StorageFailure(t *testing.T) {
	repo := &stubReviewRepo{fail: errors.New("connection reset")}
	dedup := newStubDeduper()
	svc := NewReviewService(repo, &stubEscalator{}, dedup, zerolog.Nop())

	_, err := svc.SubmitScreenings(context.Background(), "ana", []ports.ScreeningInput{
		screeningItem("40000001", true, false),
	})
	if err == nil {
		t.Fatalf("expected storage error")
	}
	if len(dedup.marked) != 0 {
		t.Fatalf("dedup keys must not be set on rollback")
	}
}

func TestReviewService_SubmitScreenings_NoExpertsAvailable(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewReviewService(repo, &stubEscalator{target: ""}, newStubDeduper(), zerolog.Nop())

	receipt, err := svc.SubmitScreenings(context.Background(), "ana", []ports.ScreeningInput{
		screeningItem("40000001", false, true),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Recorded != 1 {
		t.Fatalf("outcome must still be recorded, got %d", receipt.Recorded)
	}
	// Still flagged by the analyst even though no expert could be routed.
	if receipt.Escalated != 1 {
		t.Fatalf("expected 1 escalated, got %d", receipt.Escalated)
	}
	if len(repo.batches[0].Escalations) != 0 {
		t.Fatalf("expected no escalations with empty pool")
	}
	// Only the screened transition, no escalation row.
	if len(repo.batches[0].History) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(repo.batches[0].History))
	}
}

func verdictItem(dni, report string, authentic, forged bool) ports.VerdictInput {
	return ports.VerdictInput{
		Date:         "2026-02-10",
		Organization: "Partido 1",
		IdentityCode: dni,
		FormNumber:   "F-" + dni,
		Authentic:    authentic,
		Forged:       forged,
		MinutesSpent: 15,
		Report:       report,
	}
}

func TestReviewService_SubmitVerdicts_ReportLengthBoundary(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewReviewService(repo, &stubEscalator{}, newStubDeduper(), zerolog.Nop())

	items := []ports.VerdictInput{
		verdictItem("40000001", strings.Repeat("a", domain.MinReportLength-1), true, false),
		verdictItem("40000002", strings.Repeat("a", domain.MinReportLength), true, false),
		// 100 characters but 200 bytes in UTF-8; the limit is characters.
		verdictItem("40000003", strings.Repeat("á", domain.MinReportLength/2), true, false),
		verdictItem("40000004", strings.Repeat("á", domain.MinReportLength), true, false),
	}

	results, err := svc.SubmitVerdicts(context.Background(), "pedro", items)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if results[0].Accepted {
		t.Fatalf("199-char report must be rejected")
	}
	if !results[1].Accepted {
		t.Fatalf("200-char report must be accepted: %s", results[1].Error)
	}
	if results[2].Accepted {
		t.Fatalf("100-char accented report must be rejected")
	}
	if !results[3].Accepted {
		t.Fatalf("200-char accented report must be accepted: %s", results[3].Error)
	}
	if len(repo.verdicts) != 2 {
		t.Fatalf("expected exactly the valid verdicts stored, got %d", len(repo.verdicts))
	}
}

func TestReviewService_SubmitVerdicts_FlagExclusivity(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewReviewService(repo, &stubEscalator{}, newStubDeduper(), zerolog.Nop())

	report := strings.Repeat("a", domain.MinReportLength)
	items := []ports.VerdictInput{
		verdictItem("40000001", report, true, true),   // both flags
		verdictItem("40000002", report, false, false), // neither flag
	}

	results, err := svc.SubmitVerdicts(context.Background(), "pedro", items)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	for i, res := range results {
		if res.Accepted {
			t.Fatalf("item %d must be rejected", i)
		}
	}
	if len(repo.verdicts) != 0 {
		t.Fatalf("no verdict should be stored")
	}
}

func TestReviewService_SubmitVerdicts_PartialStorageFailure(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewReviewService(repo, &stubEscalator{}, newStubDeduper(), zerolog.Nop())

	report := strings.Repeat("a", domain.MinReportLength)
	valid := verdictItem("40000001", report, false, true)

	results, err := svc.SubmitVerdicts(context.Background(), "pedro", []ports.VerdictInput{valid})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !results[0].Accepted {
		t.Fatalf("valid verdict rejected: %s", results[0].Error)
	}

	sub := repo.verdicts[0]
	if sub.Completion.WorkType != domain.WorkExpertReview {
		t.Fatalf("unexpected completion work type: %s", sub.Completion.WorkType)
	}
	if sub.History.PriorState != domain.StateAssignedExpert || sub.History.NewState != domain.StateVerdictIssued {
		t.Fatalf("unexpected transition: %s -> %s", sub.History.PriorState, sub.History.NewState)
	}

	// Now the repo starts failing; items are rejected individually.
	repo.fail = errors.New("connection reset")
	results, err = svc.SubmitVerdicts(context.Background(), "pedro", []ports.VerdictInput{valid})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if results[0].Accepted || results[0].Error != "storage failure" {
		t.Fatalf("expected storage failure result, got %+v", results[0])
	}
}
