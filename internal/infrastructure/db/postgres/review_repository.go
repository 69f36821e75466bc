package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

const insertOutcomeSQL = `
	INSERT INTO analistas (fecha, usuario, partido, turno, hora_inicio, hora_fin,
		num_fic, dni, conforme, para_perito, observaciones, ts)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const insertVerdictSQL = `
	INSERT INTO peritos (fecha, usuario, partido, traslado_reniec, inicio_informes,
		fin_informes, dni, num_fic, autentica, falsa, tiempo_min, observaciones, informe, ts)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

const insertHistorySQL = `
	INSERT INTO historial_estados (dni, num_fic, partido, estado_anterior, estado_actual, cambiado_por, ts)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

type PostgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{pool: pool}
}

// SubmitScreeningBatch writes an entire screening sitting in one transaction.
// Any failure rolls back every outcome, completion, escalation, and history
// row of the batch.
func (r *PostgresReviewRepository) SubmitScreeningBatch(ctx context.Context, batch ports.ScreeningBatch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin screening batch: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, o := range batch.Outcomes {
		if _, err := tx.Exec(ctx, insertOutcomeSQL,
			o.Date, o.Worker, o.Organization, o.Shift, o.StartTime, o.EndTime,
			o.FormNumber, o.IdentityCode, o.Conforms, o.Escalate, o.Notes, o.Timestamp); err != nil {
			return fmt.Errorf("insert screening outcome: %w", err)
		}
	}

	for _, a := range batch.Escalations {
		if _, err := tx.Exec(ctx, insertAssignmentSQL,
			a.IdentityCode, a.FormNumber, a.Organization, a.AssignedTo, string(a.WorkType), a.AssignedAt); err != nil {
			return fmt.Errorf("insert escalation: %w", err)
		}
	}

	for _, c := range batch.Completions {
		if _, err := tx.Exec(ctx, completeAssignmentSQL,
			c.IdentityCode, c.Organization, string(c.WorkType)); err != nil {
			return fmt.Errorf("complete assignment: %w", err)
		}
	}

	if err := insertHistory(ctx, tx, batch.History); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit screening batch: %w", err)
	}
	return nil
}

// SubmitVerdict writes a single verdict with its completion and history row.
func (r *PostgresReviewRepository) SubmitVerdict(ctx context.Context, submission ports.VerdictSubmission) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin verdict: %w", err)
	}
	defer tx.Rollback(ctx)

	v := submission.Verdict
	if _, err := tx.Exec(ctx, insertVerdictSQL,
		v.Date, v.Worker, v.Organization, v.TransitTime, v.StartTime, v.EndTime,
		v.IdentityCode, v.FormNumber, v.Authentic, v.Forged, v.MinutesSpent,
		v.Notes, v.Report, v.Timestamp); err != nil {
		return fmt.Errorf("insert verdict: %w", err)
	}

	c := submission.Completion
	if _, err := tx.Exec(ctx, completeAssignmentSQL,
		c.IdentityCode, c.Organization, string(c.WorkType)); err != nil {
		return fmt.Errorf("complete assignment: %w", err)
	}

	if err := insertHistory(ctx, tx, []domain.StateHistory{submission.History}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit verdict: %w", err)
	}
	return nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, rows []domain.StateHistory) error {
	for _, h := range rows {
		if _, err := tx.Exec(ctx, insertHistorySQL,
			h.IdentityCode, h.FormNumber, h.Organization, h.PriorState, h.NewState, h.Actor, h.Timestamp); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}
	return nil
}
