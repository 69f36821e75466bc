package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jneverifica/firmas-system/internal/core/ports"
)

type PostgresReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{pool: pool}
}

func (r *PostgresReportRepository) ScreeningAggregates(ctx context.Context) ([]ports.WorkerAggregate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT usuario, COUNT(*),
			COALESCE(SUM(conforme::int), 0),
			COALESCE(SUM(para_perito::int), 0)
		 FROM analistas GROUP BY usuario ORDER BY usuario`)
	if err != nil {
		return nil, fmt.Errorf("screening aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []ports.WorkerAggregate
	for rows.Next() {
		var a ports.WorkerAggregate
		if err := rows.Scan(&a.Worker, &a.Count, &a.Conforming, &a.Escalated); err != nil {
			return nil, fmt.Errorf("scan screening aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

func (r *PostgresReportRepository) VerdictAggregates(ctx context.Context) ([]ports.WorkerAggregate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT usuario, COUNT(*),
			COALESCE(SUM(autentica::int), 0),
			COALESCE(SUM(falsa::int), 0),
			COALESCE(AVG(tiempo_min), 0)
		 FROM peritos GROUP BY usuario ORDER BY usuario`)
	if err != nil {
		return nil, fmt.Errorf("verdict aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []ports.WorkerAggregate
	for rows.Next() {
		var a ports.WorkerAggregate
		if err := rows.Scan(&a.Worker, &a.Count, &a.Authentic, &a.Forged, &a.AvgMinutes); err != nil {
			return nil, fmt.Errorf("scan verdict aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

func (r *PostgresReportRepository) OutcomeCounts(ctx context.Context) (screenings, verdicts int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM analistas), (SELECT COUNT(*) FROM peritos)`,
	).Scan(&screenings, &verdicts)
	if err != nil {
		return 0, 0, fmt.Errorf("outcome counts: %w", err)
	}
	return screenings, verdicts, nil
}
