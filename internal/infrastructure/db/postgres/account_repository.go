package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

const uniqueViolation = "23505"

type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO usuarios (username, password, salt, nombre, rol, activo)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		account.Username, account.PasswordHash, account.Salt, account.Name, account.Role, account.Active,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	created.ID = id
	return &created, nil
}

func (r *PostgresAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password, salt, nombre, rol, activo
		 FROM usuarios WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Salt, &a.Name, &a.Role, &a.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &a, nil
}

func (r *PostgresAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, password, salt, nombre, rol, activo
		 FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *PostgresAccountRepository) ListByRole(ctx context.Context, role string) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, password, salt, nombre, rol, activo
		 FROM usuarios WHERE rol = $1 ORDER BY username`,
		role)
	if err != nil {
		return nil, fmt.Errorf("list accounts by role: %w", err)
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *PostgresAccountRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE usuarios SET activo = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanAccounts(rows pgx.Rows) ([]domain.Account, error) {
	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Salt, &a.Name, &a.Role, &a.Active); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
