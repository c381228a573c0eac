package database

import (
	"context"
	"fmt"
)

// schema is idempotent; Migrate runs it on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS work_settings (
		id                 SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		work_hours_per_day DOUBLE PRECISION NOT NULL,
		tolerance_minutes  INTEGER NOT NULL,
		work_start_time    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id                 TEXT PRIMARY KEY,
		position           INTEGER NOT NULL,
		name               TEXT NOT NULL,
		work_hours_per_day DOUBLE PRECISION,
		work_start_time    TEXT,
		work_end_time      TEXT,
		work_days          TEXT[]
	)`,
	`CREATE TABLE IF NOT EXISTS time_entries (
		id             TEXT PRIMARY KEY,
		position       INTEGER NOT NULL,
		employee_id    TEXT NOT NULL,
		employee_name  TEXT NOT NULL,
		date           DATE NOT NULL,
		clock_in       TEXT,
		clock_out      TEXT,
		breaks         JSONB NOT NULL DEFAULT '[]'::jsonb,
		status         TEXT NOT NULL,
		break_time     DOUBLE PRECISION,
		signature      TEXT,
		signature_date TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_employee_date ON time_entries (employee_id, date)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
