package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; schema_version records the last one run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS timelines (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		language TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cues (
		timeline_id TEXT NOT NULL REFERENCES timelines(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		start_seconds REAL NOT NULL,
		end_seconds REAL NOT NULL,
		text TEXT NOT NULL,
		original_id INTEGER NOT NULL DEFAULT 0,
		language TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (timeline_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cues_timeline_start
		ON cues (timeline_id, start_seconds)`,
}

func (s *Store) applyMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("seed schema_version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema_version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := s.db.ExecContext(ctx, `UPDATE schema_version SET version = ?`, i+1); err != nil {
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}
	}
	return nil
}
