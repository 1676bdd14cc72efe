package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every statement in order. Statements are idempotent, so
// it is safe to run on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS in SQLite
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS drafts (
		id         TEXT PRIMARY KEY,
		entity     TEXT NOT NULL CHECK(entity IN ('job','bl')),
		mode       TEXT NOT NULL CHECK(mode IN ('add','edit')),
		method     TEXT NOT NULL CHECK(method IN ('POST','PUT')),
		path       TEXT NOT NULL,
		payload    TEXT NOT NULL,
		last_error TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_drafts_entity ON drafts(entity)`,
	`CREATE INDEX IF NOT EXISTS idx_drafts_created ON drafts(created_at)`,

	`ALTER TABLE drafts ADD COLUMN attempts INTEGER NOT NULL DEFAULT 1`,
}
