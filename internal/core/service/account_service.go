package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

const (
	saltLength   = 16
	saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Bootstrap administrator created on first start.
const (
	bootstrapUsername = "admin"
	bootstrapPassword = "admin123"
	bootstrapName     = "Administrador"
)

// AccountService implements account management and authentication.
type AccountService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AccountService) CreateAccount(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	salt, err := newSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	account := &domain.Account{
		Username:     input.Username,
		PasswordHash: hashPassword(input.Password, salt),
		Salt:         salt,
		Name:         input.Name,
		Role:         input.Role,
		Active:       input.Active,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("account created")
	return created, nil
}

func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, *ports.Profile, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// Unknown user is reported exactly like a bad password.
		return "", nil, domain.ErrInvalidCredentials
	}
	if !account.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	candidate := hashPassword(password, account.Salt)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(account.PasswordHash)) != 1 {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	profile := &ports.Profile{
		ID:       account.ID,
		Username: account.Username,
		Name:     account.Name,
		Role:     account.Role,
	}
	return token, profile, nil
}

// SeedAdmin ensures the bootstrap administrator exists. Safe to call on every
// start; a no-op when the username is already taken.
func (s *AccountService) SeedAdmin(ctx context.Context) error {
	if _, err := s.repo.FindByUsername(ctx, bootstrapUsername); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	_, err := s.CreateAccount(ctx, ports.CreateAccountInput{
		Username: bootstrapUsername,
		Password: bootstrapPassword,
		Name:     bootstrapName,
		Role:     domain.RoleAdmin,
		Active:   true,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}

func (s *AccountService) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Info().Int64("account_id", id).Bool("active", active).Msg("account active flag updated")
	return nil
}

func (s *AccountService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  account.ID,
		"username": account.Username,
		"name":     account.Name,
		"role":     account.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// hashPassword returns the hex sha256 of password concatenated with salt,
// the stored credential format.
func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// newSalt returns saltLength random characters from saltAlphabet.
func newSalt() (string, error) {
	b := make([]byte, saltLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = saltAlphabet[int(b[i])%len(saltAlphabet)]
	}
	return string(b), nil
}
