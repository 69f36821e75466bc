package ports

import (
	"context"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// AccountRepository persists user accounts. Accounts are never hard-deleted;
// deactivation is the only removal mechanism.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	// ListByRole returns accounts with the given role in stable username order.
	ListByRole(ctx context.Context, role string) ([]domain.Account, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
