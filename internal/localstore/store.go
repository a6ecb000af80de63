// Package localstore is a single-file SQLite implementation of the engine's
// stores, used by the CLI and the local MCP server.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "myworkout.db"

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id                      TEXT PRIMARY KEY,
	name                    TEXT NOT NULL,
	age                     INTEGER,
	gender                  TEXT NOT NULL DEFAULT '',
	goal                    TEXT NOT NULL,
	duration_min            INTEGER NOT NULL,
	training_days_per_week  INTEGER NOT NULL,
	cycle_length_weeks      INTEGER NOT NULL,
	equipment               TEXT NOT NULL DEFAULT '[]',
	limitations             TEXT NOT NULL DEFAULT '[]',
	excluded_exercises      TEXT NOT NULL DEFAULT '[]',
	created_at              INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS exercises (
	id                 TEXT PRIMARY KEY,
	slug               TEXT NOT NULL UNIQUE,
	name               TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	movement           TEXT NOT NULL,
	primary_muscle     TEXT NOT NULL DEFAULT '',
	equipment          TEXT NOT NULL DEFAULT '[]',
	contraindications  TEXT NOT NULL DEFAULT '[]',
	progression_path   TEXT NOT NULL DEFAULT '',
	progression_step   INTEGER,
	min_reps           INTEGER NOT NULL,
	max_reps           INTEGER NOT NULL,
	strain_score       INTEGER NOT NULL DEFAULT 2,
	science_note       TEXT NOT NULL DEFAULT '',
	video_url          TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS workout_sessions (
	id             TEXT PRIMARY KEY,
	profile_id     TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	goal           TEXT NOT NULL,
	duration_min   INTEGER NOT NULL,
	block_week     INTEGER NOT NULL,
	phase          TEXT NOT NULL,
	fatigue_score  REAL NOT NULL,
	deload         INTEGER NOT NULL,
	target_rpe     REAL NOT NULL,
	created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_profile ON workout_sessions (profile_id);
CREATE TABLE IF NOT EXISTS session_items (
	session_id     TEXT NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	exercise_id    TEXT NOT NULL REFERENCES exercises(id),
	sets           INTEGER NOT NULL,
	reps_min       INTEGER NOT NULL,
	reps_max       INTEGER NOT NULL,
	rest_sec       INTEGER NOT NULL,
	load_modifier  REAL NOT NULL,
	PRIMARY KEY (session_id, position)
);
CREATE TABLE IF NOT EXISTS workout_feedback (
	seq             INTEGER PRIMARY KEY AUTOINCREMENT,
	id              TEXT NOT NULL UNIQUE,
	session_id      TEXT NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
	exercise_id     TEXT NOT NULL REFERENCES exercises(id),
	avg_rpe         REAL NOT NULL,
	completed_sets  INTEGER NOT NULL,
	completed_reps  INTEGER NOT NULL,
	difficulty      TEXT NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_feedback_session ON workout_feedback (session_id);
`

// Store is a SQLite-backed profile, catalog, session and feedback store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dir/myworkout.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dsn := "file:" + filepath.Join(dir, FileName) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// jsonList stores a string slice as a JSON array column.
type jsonList[T ~string] struct {
	v *[]T
}

func (j jsonList[T]) Scan(src any) error {
	var b []byte
	switch x := src.(type) {
	case string:
		b = []byte(x)
	case []byte:
		b = x
	case nil:
		*j.v = []T{}
		return nil
	default:
		return fmt.Errorf("unsupported list column type %T", src)
	}
	out := []T{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("decoding list column: %w", err)
	}
	*j.v = out
	return nil
}

func encodeList[T ~string](v []T) string {
	if len(v) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func unixNano(t time.Time) int64 { return t.UnixNano() }

func fromUnixNano(n int64) time.Time { return time.Unix(0, n).UTC() }
