package ports

import (
	"context"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// CreateAccountInput carries all data needed to register a new account.
type CreateAccountInput struct {
	Username string
	Password string
	Name     string
	Role     string
	Active   bool
}

// Profile is the public view of an account returned after authentication.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// AccountService defines account management and authentication use cases.
type AccountService interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	// Authenticate returns a signed session token and the public profile on
	// success. Unknown user, wrong password, and inactive account all fail
	// with the same generic error.
	Authenticate(ctx context.Context, username, password string) (string, *Profile, error)
	// SeedAdmin idempotently ensures the bootstrap administrator exists.
	SeedAdmin(ctx context.Context) error
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
