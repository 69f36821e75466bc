package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Five-table store: users, screening outcomes, expert verdicts, assignments,
// and the state audit trail. Column names follow the persisted interface.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		salt TEXT NOT NULL,
		nombre TEXT NOT NULL DEFAULT '',
		rol TEXT NOT NULL,
		activo BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS analistas (
		id BIGSERIAL PRIMARY KEY,
		fecha TEXT NOT NULL,
		usuario TEXT NOT NULL REFERENCES usuarios(username),
		partido TEXT NOT NULL,
		turno TEXT NOT NULL DEFAULT '',
		hora_inicio TEXT NOT NULL DEFAULT '',
		hora_fin TEXT NOT NULL DEFAULT '',
		num_fic TEXT NOT NULL,
		dni TEXT NOT NULL,
		conforme BOOLEAN NOT NULL,
		para_perito BOOLEAN NOT NULL,
		observaciones TEXT NOT NULL DEFAULT '',
		ts TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS peritos (
		id BIGSERIAL PRIMARY KEY,
		fecha TEXT NOT NULL,
		usuario TEXT NOT NULL REFERENCES usuarios(username),
		partido TEXT NOT NULL,
		traslado_reniec TEXT NOT NULL DEFAULT '',
		inicio_informes TEXT NOT NULL DEFAULT '',
		fin_informes TEXT NOT NULL DEFAULT '',
		dni TEXT NOT NULL,
		num_fic TEXT NOT NULL,
		autentica BOOLEAN NOT NULL,
		falsa BOOLEAN NOT NULL,
		tiempo_min INTEGER NOT NULL DEFAULT 0,
		observaciones TEXT NOT NULL DEFAULT '',
		informe TEXT NOT NULL,
		ts TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS asignaciones (
		id BIGSERIAL PRIMARY KEY,
		dni TEXT NOT NULL,
		num_fic TEXT NOT NULL,
		partido TEXT NOT NULL,
		asignado_a TEXT NOT NULL REFERENCES usuarios(username),
		tipo_asignacion TEXT NOT NULL,
		fecha_asignacion TIMESTAMPTZ NOT NULL,
		completado BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE TABLE IF NOT EXISTS historial_estados (
		id BIGSERIAL PRIMARY KEY,
		dni TEXT NOT NULL,
		num_fic TEXT NOT NULL,
		partido TEXT NOT NULL,
		estado_anterior TEXT NOT NULL,
		estado_actual TEXT NOT NULL,
		cambiado_por TEXT NOT NULL,
		ts TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables when absent. Idempotent; run at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
