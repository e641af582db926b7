package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"subweave/internal/subtitle"
)

// ErrNotFound is returned when a timeline id or name does not exist.
var ErrNotFound = errors.New("timeline not found")

// ErrLocked is returned when another process holds the store lock.
var ErrLocked = errors.New("timeline store is locked by another process")

// Store manages timeline persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open connects to the timeline database at path, creating it and applying
// migrations as needed. The adjacent lock file is acquired immediately;
// a second opener gets ErrLocked rather than a chance to interleave writes.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database and the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && dbErr == nil {
			dbErr = unlockErr
		}
	}
	return dbErr
}

// Create inserts a new empty timeline and returns its header.
func (s *Store) Create(ctx context.Context, name, lang string) (*Timeline, error) {
	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO timelines (id, name, language, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, name, lang, now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert timeline: %w", err)
	}
	return &Timeline{ID: id, Name: name, Language: lang, CreatedAt: now, UpdatedAt: now}, nil
}

// SaveCues replaces a timeline's cues wholesale. The caller hands over a
// normalized list; partial updates do not exist, matching the value
// semantics of the reconciliation core.
func (s *Store) SaveCues(ctx context.Context, timelineID string, records []subtitle.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE timelines SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), timelineID)
	if err != nil {
		return fmt.Errorf("touch timeline: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("touch timeline: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cues WHERE timeline_id = ?`, timelineID); err != nil {
		return fmt.Errorf("clear cues: %w", err)
	}
	for i, r := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cues (timeline_id, seq, start_seconds, end_seconds, text, original_id, language)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			timelineID, i+1, r.Start, r.End, r.Text, r.OriginalID, r.Language); err != nil {
			return fmt.Errorf("insert cue %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadCues returns a timeline's cues in order.
func (s *Store) LoadCues(ctx context.Context, timelineID string) ([]subtitle.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, start_seconds, end_seconds, text, original_id, language
		 FROM cues WHERE timeline_id = ? ORDER BY seq`, timelineID)
	if err != nil {
		return nil, fmt.Errorf("query cues: %w", err)
	}
	defer rows.Close()

	var records []subtitle.Record
	for rows.Next() {
		var r subtitle.Record
		if err := rows.Scan(&r.ID, &r.Start, &r.End, &r.Text, &r.OriginalID, &r.Language); err != nil {
			return nil, fmt.Errorf("scan cue: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cues: %w", err)
	}
	return records, nil
}

// FindByName resolves a timeline header by its unique name.
func (s *Store) FindByName(ctx context.Context, name string) (*Timeline, error) {
	return s.queryOne(ctx, `WHERE t.name = ?`, name)
}

// Find resolves a timeline header by id.
func (s *Store) Find(ctx context.Context, id string) (*Timeline, error) {
	return s.queryOne(ctx, `WHERE t.id = ?`, id)
}

func (s *Store) queryOne(ctx context.Context, where string, arg any) (*Timeline, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT t.id, t.name, t.language, t.created_at, t.updated_at,
		        (SELECT COUNT(*) FROM cues c WHERE c.timeline_id = t.id)
		 FROM timelines t `+where, arg)
	tl, err := scanTimeline(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return tl, err
}

// List returns all timeline headers ordered by most recent update.
func (s *Store) List(ctx context.Context) ([]Timeline, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.language, t.created_at, t.updated_at,
		        (SELECT COUNT(*) FROM cues c WHERE c.timeline_id = t.id)
		 FROM timelines t ORDER BY t.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query timelines: %w", err)
	}
	defer rows.Close()

	var out []Timeline
	for rows.Next() {
		tl, err := scanTimeline(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timelines: %w", err)
	}
	return out, nil
}

// Rename changes a timeline's display name.
func (s *Store) Rename(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE timelines SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("rename timeline: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a timeline and its cues.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM timelines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete timeline: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimeline(row rowScanner) (*Timeline, error) {
	var tl Timeline
	var createdAt, updatedAt string
	if err := row.Scan(&tl.ID, &tl.Name, &tl.Language, &createdAt, &updatedAt, &tl.CueCount); err != nil {
		return nil, err
	}
	var err error
	if tl.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if tl.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &tl, nil
}
