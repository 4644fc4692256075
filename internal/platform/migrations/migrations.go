// Package migrations applies the database schema on startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// statements are executed in order. Each statement is idempotent so that
// Apply can run on every startup.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL,
		personal_details TEXT NOT NULL,
		income           DOUBLE PRECISION NOT NULL DEFAULT 0,
		expenses         DOUBLE PRECISION NOT NULL DEFAULT 0,
		assets           DOUBLE PRECISION NOT NULL DEFAULT 0,
		liabilities      DOUBLE PRECISION NOT NULL DEFAULT 0,
		owner_id         TEXT NOT NULL REFERENCES users (id),
		is_deleted       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_owner ON applications (owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_owner_live ON applications (owner_id) WHERE is_deleted = FALSE`,
}

// Apply runs every migration statement against db.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
