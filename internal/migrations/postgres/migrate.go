package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"spacebook/pkg/logger"
)

// ActiveSlotIndexName guards the one-upcoming-reservation-per-slot-key rule.
const ActiveSlotIndexName = "reservations_active_slot_key"

var statements = []string{
	`CREATE TABLE IF NOT EXISTS reservations (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		space_id       TEXT NOT NULL,
		space_name     TEXT NOT NULL,
		space_category TEXT NOT NULL,
		date           DATE NOT NULL,
		slot_id        TEXT NOT NULL,
		start_time     TEXT NOT NULL,
		end_time       TEXT NOT NULL,
		status         TEXT NOT NULL CHECK (status IN ('upcoming', 'cancelled')),
		booked_at      TIMESTAMPTZ NOT NULL,
		cancelled_at   TIMESTAMPTZ NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + ActiveSlotIndexName + `
		ON reservations (space_id, date, slot_id) WHERE status = 'upcoming'`,
	`CREATE INDEX IF NOT EXISTS reservations_user_idx
		ON reservations (user_id, date, start_time)`,
}

// RunMigration applies the schema in one transaction. Every statement is idempotent.
func RunMigration(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	log.Info("Running PostgreSQL migrations")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	log.Info("All PostgreSQL migrations applied", "statements", len(statements))
	return nil
}
