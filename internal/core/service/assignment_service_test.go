package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

type stubAssignmentRepo struct {
	active  map[string]struct{}
	created []domain.Assignment
	pending []domain.Assignment
}

func (r *stubAssignmentRepo) CreateBatch(ctx context.Context, assignments []domain.Assignment) (int, error) {
	r.created = append(r.created, assignments...)
	return len(assignments), nil
}

func (r *stubAssignmentRepo) ActiveIdentityCodes(ctx context.Context, workType domain.WorkType) (map[string]struct{}, error) {
	if r.active == nil {
		return map[string]struct{}{}, nil
	}
	return r.active, nil
}

func (r *stubAssignmentRepo) PendingFor(ctx context.Context, workerID int64, workType domain.WorkType) ([]domain.Assignment, error) {
	return r.pending, nil
}

func (r *stubAssignmentRepo) MarkCompleted(ctx context.Context, identityCode, organization string, workType domain.WorkType) error {
	return nil
}

type stubCatalog struct {
	records []domain.CatalogRecord
	err     error
}

func (c *stubCatalog) Load(ctx context.Context) ([]domain.CatalogRecord, error) {
	return c.records, c.err
}

func analystAccounts() *memAccountRepo {
	repo := newMemAccountRepo()
	repo.accounts["ana"] = &domain.Account{ID: 1, Username: "ana", Role: domain.RoleAnalyst, Active: true}
	return repo
}

func TestAssignmentService_BulkAssign_FiltersAndCaps(t *testing.T) {
	repo := &stubAssignmentRepo{active: map[string]struct{}{"40000002": {}}}
	catalog := &stubCatalog{records: []domain.CatalogRecord{
		{Item: "1", FormNumber: "F-001", OrgCode: "1", IdentityCode: "40000001"},
		{Item: "2", FormNumber: "F-002", OrgCode: "1", IdentityCode: "40000002"}, // already assigned
		{Item: "3", FormNumber: "F-003", OrgCode: "2", IdentityCode: "40000003"}, // other org
		{Item: "4", FormNumber: "F-004", OrgCode: "1", IdentityCode: "40000004"},
		{Item: "5", FormNumber: "F-005", OrgCode: "1", IdentityCode: "40000005"},
	}}
	svc := NewAssignmentService(repo, analystAccounts(), catalog, zerolog.Nop())

	created, err := svc.BulkAssign(context.Background(), ports.BulkAssignInput{
		OrgCode: "1",
		Count:   2,
		Worker:  "ana",
	})
	if err != nil {
		t.Fatalf("bulk assign: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 created, got %d", created)
	}

	if repo.created[0].IdentityCode != "40000001" || repo.created[1].IdentityCode != "40000004" {
		t.Fatalf("unexpected selection: %+v", repo.created)
	}
	if repo.created[0].Organization != "Partido 1" {
		t.Fatalf("expected organization label, got %q", repo.created[0].Organization)
	}
	if repo.created[0].WorkType != domain.WorkScreening {
		t.Fatalf("expected default screening work type, got %s", repo.created[0].WorkType)
	}
	if repo.created[0].AssignedTo != "ana" {
		t.Fatalf("unexpected assignee: %s", repo.created[0].AssignedTo)
	}
}

func TestAssignmentService_BulkAssign_ZeroCount(t *testing.T) {
	repo := &stubAssignmentRepo{}
	svc := NewAssignmentService(repo, analystAccounts(), &stubCatalog{}, zerolog.Nop())

	created, err := svc.BulkAssign(context.Background(), ports.BulkAssignInput{OrgCode: "1", Count: 0, Worker: "ana"})
	if err != nil {
		t.Fatalf("bulk assign: %v", err)
	}
	if created != 0 || len(repo.created) != 0 {
		t.Fatalf("expected no-op, got %d created", created)
	}
}

func TestAssignmentService_BulkAssign_UnknownWorker(t *testing.T) {
	svc := NewAssignmentService(&stubAssignmentRepo{}, newMemAccountRepo(), &stubCatalog{}, zerolog.Nop())

	_, err := svc.BulkAssign(context.Background(), ports.BulkAssignInput{OrgCode: "1", Count: 5, Worker: "fantasma"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAssignmentService_BulkAssign_NothingAvailable(t *testing.T) {
	repo := &stubAssignmentRepo{active: map[string]struct{}{"40000001": {}}}
	catalog := &stubCatalog{records: []domain.CatalogRecord{
		{Item: "1", FormNumber: "F-001", OrgCode: "1", IdentityCode: "40000001"},
	}}
	svc := NewAssignmentService(repo, analystAccounts(), catalog, zerolog.Nop())

	created, err := svc.BulkAssign(context.Background(), ports.BulkAssignInput{OrgCode: "1", Count: 10, Worker: "ana"})
	if err != nil {
		t.Fatalf("bulk assign: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 created, got %d", created)
	}
}

func expertAccounts(usernames ...string) *memAccountRepo {
	repo := newMemAccountRepo()
	for i, u := range usernames {
		repo.accounts[u] = &domain.Account{ID: int64(i + 10), Username: u, Role: domain.RoleExpert, Active: true}
	}
	return repo
}

func TestAssignmentService_Escalate_Deterministic(t *testing.T) {
	accounts := expertAccounts("pedro", "maria", "luis")
	svc := NewAssignmentService(&stubAssignmentRepo{}, accounts, &stubCatalog{}, zerolog.Nop())

	first, err := svc.Escalate(context.Background(), "40111222", "F-010", "Partido 1")
	if err != nil {
		t.Fatalf("escalate: %v", err)
	}
	if first == nil {
		t.Fatalf("expected an assignment")
	}
	if first.WorkType != domain.WorkExpertReview {
		t.Fatalf("expected expert work type, got %s", first.WorkType)
	}

	// Same identity code must route to the same expert every time.
	for i := 0; i < 5; i++ {
		again, err := svc.Escalate(context.Background(), "40111222", "F-010", "Partido 1")
		if err != nil {
			t.Fatalf("escalate: %v", err)
		}
		if again.AssignedTo != first.AssignedTo {
			t.Fatalf("routing not deterministic: %s vs %s", again.AssignedTo, first.AssignedTo)
		}
	}
}

func TestAssignmentService_Escalate_SkipsInactiveExperts(t *testing.T) {
	accounts := expertAccounts("pedro", "maria")
	accounts.accounts["maria"].Active = false
	svc := NewAssignmentService(&stubAssignmentRepo{}, accounts, &stubCatalog{}, zerolog.Nop())

	// With a single active expert every code lands on them.
	for _, dni := range []string{"40111222", "40111223", "40111224"} {
		esc, err := svc.Escalate(context.Background(), dni, "F-010", "Partido 1")
		if err != nil {
			t.Fatalf("escalate: %v", err)
		}
		if esc.AssignedTo != "pedro" {
			t.Fatalf("expected pedro, got %s", esc.AssignedTo)
		}
	}
}

func TestAssignmentService_Escalate_EmptyPool(t *testing.T) {
	svc := NewAssignmentService(&stubAssignmentRepo{}, newMemAccountRepo(), &stubCatalog{}, zerolog.Nop())

	esc, err := svc.Escalate(context.Background(), "40111222", "F-010", "Partido 1")
	if err != nil {
		t.Fatalf("escalate: %v", err)
	}
	if esc != nil {
		t.Fatalf("expected nil assignment for empty pool, got %+v", esc)
	}
}
