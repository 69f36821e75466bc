package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// insertAssignmentSQL creates an assignment unless an active one of the same
// work type already exists for the identity code. The guard runs inside the
// insert itself, so duplicate rows are skipped rather than failed on.
const insertAssignmentSQL = `
	INSERT INTO asignaciones (dni, num_fic, partido, asignado_a, tipo_asignacion, fecha_asignacion, completado)
	SELECT $1, $2, $3, $4, $5, $6, false
	WHERE NOT EXISTS (
		SELECT 1 FROM asignaciones
		WHERE dni = $1 AND tipo_asignacion = $5 AND completado = false
	)`

const completeAssignmentSQL = `
	UPDATE asignaciones SET completado = true
	WHERE dni = $1 AND partido = $2 AND tipo_asignacion = $3 AND completado = false`

type PostgresAssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{pool: pool}
}

func (r *PostgresAssignmentRepository) CreateBatch(ctx context.Context, assignments []domain.Assignment) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin assignment batch: %w", err)
	}
	defer tx.Rollback(ctx)

	created := 0
	for _, a := range assignments {
		tag, err := tx.Exec(ctx, insertAssignmentSQL,
			a.IdentityCode, a.FormNumber, a.Organization, a.AssignedTo, string(a.WorkType), a.AssignedAt)
		if err != nil {
			return 0, fmt.Errorf("insert assignment: %w", err)
		}
		created += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit assignment batch: %w", err)
	}
	return created, nil
}

func (r *PostgresAssignmentRepository) ActiveIdentityCodes(ctx context.Context, workType domain.WorkType) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT dni FROM asignaciones WHERE tipo_asignacion = $1 AND completado = false`,
		string(workType))
	if err != nil {
		return nil, fmt.Errorf("active identity codes: %w", err)
	}
	defer rows.Close()

	active := make(map[string]struct{})
	for rows.Next() {
		var dni string
		if err := rows.Scan(&dni); err != nil {
			return nil, fmt.Errorf("scan identity code: %w", err)
		}
		active[dni] = struct{}{}
	}
	return active, rows.Err()
}

func (r *PostgresAssignmentRepository) PendingFor(ctx context.Context, workerID int64, workType domain.WorkType) ([]domain.Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.dni, a.num_fic, a.partido, a.asignado_a, a.tipo_asignacion, a.fecha_asignacion, a.completado
		 FROM asignaciones a
		 JOIN usuarios u ON a.asignado_a = u.username
		 WHERE u.id = $1 AND a.tipo_asignacion = $2 AND a.completado = false
		 ORDER BY a.id`,
		workerID, string(workType))
	if err != nil {
		return nil, fmt.Errorf("pending assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *PostgresAssignmentRepository) MarkCompleted(ctx context.Context, identityCode, organization string, workType domain.WorkType) error {
	// No rows affected means no matching active assignment: a no-op.
	if _, err := r.pool.Exec(ctx, completeAssignmentSQL, identityCode, organization, string(workType)); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

func scanAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var workType string
		if err := rows.Scan(&a.ID, &a.IdentityCode, &a.FormNumber, &a.Organization,
			&a.AssignedTo, &workType, &a.AssignedAt, &a.Completed); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		a.WorkType = domain.WorkType(workType)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
