package service

import (
	"context"
	"hash/fnv"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

// AssignmentService owns the assignment lifecycle: bulk distribution of
// screening work and deterministic escalation routing to experts.
type AssignmentService struct {
	repo     ports.AssignmentRepository
	accounts ports.AccountRepository
	catalog  ports.CatalogSource
	log      zerolog.Logger
}

func NewAssignmentService(repo ports.AssignmentRepository, accounts ports.AccountRepository, catalog ports.CatalogSource, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{repo: repo, accounts: accounts, catalog: catalog, log: log}
}

// BulkAssign walks the catalog in order and assigns the first Count records
// of the organization that carry no active assignment of the work type.
// Records already assigned are skipped, never failed on.
func (s *AssignmentService) BulkAssign(ctx context.Context, input ports.BulkAssignInput) (int, error) {
	if input.Count <= 0 {
		return 0, nil
	}
	workType := input.WorkType
	if workType == "" {
		workType = domain.WorkScreening
	}

	if _, err := s.accounts.FindByUsername(ctx, input.Worker); err != nil {
		return 0, err
	}

	records, err := s.catalog.Load(ctx)
	if err != nil {
		return 0, err
	}

	active, err := s.repo.ActiveIdentityCodes(ctx, workType)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	assignments := make([]domain.Assignment, 0, input.Count)
	for _, r := range records {
		if r.OrgCode != input.OrgCode {
			continue
		}
		if _, taken := active[r.IdentityCode]; taken {
			continue
		}
		assignments = append(assignments, domain.Assignment{
			IdentityCode: r.IdentityCode,
			FormNumber:   r.FormNumber,
			Organization: domain.OrganizationLabel(r.OrgCode),
			AssignedTo:   input.Worker,
			WorkType:     workType,
			AssignedAt:   now,
		})
		if len(assignments) == input.Count {
			break
		}
	}
	if len(assignments) == 0 {
		return 0, nil
	}

	created, err := s.repo.CreateBatch(ctx, assignments)
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Str("worker", input.Worker).
		Str("work_type", string(workType)).
		Str("org", input.OrgCode).
		Int("created", created).
		Msg("bulk assignment")
	return created, nil
}

// Escalate picks the expert for an identity code and returns the
// expert-review assignment to persist alongside the screening outcome.
// An empty expert pool is a deliberate no-op: nil assignment, nil error.
func (s *AssignmentService) Escalate(ctx context.Context, identityCode, formNumber, orgLabel string) (*domain.Assignment, error) {
	accounts, err := s.accounts.ListByRole(ctx, domain.RoleExpert)
	if err != nil {
		return nil, err
	}

	experts := accounts[:0]
	for _, a := range accounts {
		if a.Active {
			experts = append(experts, a)
		}
	}
	if len(experts) == 0 {
		s.log.Warn().Str("dni", identityCode).Msg("no experts available, escalation skipped")
		return nil, nil
	}
	sort.Slice(experts, func(i, j int) bool { return experts[i].Username < experts[j].Username })

	target := experts[expertIndex(identityCode, len(experts))]
	return &domain.Assignment{
		IdentityCode: identityCode,
		FormNumber:   formNumber,
		Organization: orgLabel,
		AssignedTo:   target.Username,
		WorkType:     domain.WorkExpertReview,
		AssignedAt:   time.Now().UTC(),
	}, nil
}

func (s *AssignmentService) MarkCompleted(ctx context.Context, identityCode, organization string, workType domain.WorkType) error {
	return s.repo.MarkCompleted(ctx, identityCode, organization, workType)
}

func (s *AssignmentService) PendingFor(ctx context.Context, workerID int64, workType domain.WorkType) ([]domain.Assignment, error) {
	return s.repo.PendingFor(ctx, workerID, workType)
}

// expertIndex maps an identity code deterministically to an expert slot.
// fnv32a is stable across processes and restarts, so escalation routing is
// reproducible for a fixed roster.
func expertIndex(identityCode string, pool int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identityCode))
	return int(h.Sum32()) % pool
}
