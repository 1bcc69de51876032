package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full set runs on each open.
func Migrate(db *sql.DB, d Dialect) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i, d, err)
		}
	}
	return nil
}

// Column types are limited to TEXT and INTEGER so one schema serves both
// SQLite and PostgreSQL. Dates are YYYY-MM-DD, clock times HH:MM, and
// timestamps RFC3339, all in UTC.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		username     TEXT NOT NULL UNIQUE,
		email        TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		header_id    TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sleep_logs (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date         TEXT NOT NULL,
		sleepiness   INTEGER,
		toilet_count INTEGER NOT NULL DEFAULT 0,
		memo         TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		UNIQUE (user_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS sleep_segments (
		id          TEXT PRIMARY KEY,
		log_id      TEXT NOT NULL REFERENCES sleep_logs(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL,
		start_at    TEXT NOT NULL,
		end_at      TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		log_id      TEXT NOT NULL REFERENCES sleep_logs(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL,
		happened_at TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sleep_logs_user_date ON sleep_logs(user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_sleep_segments_log ON sleep_segments(log_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_log ON events(log_id)`,
}
