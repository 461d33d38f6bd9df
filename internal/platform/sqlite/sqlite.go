// Package sqlite provides single-node implementations of the store
// interfaces on an embedded SQLite database (modernc.org/sqlite, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS workout_sets (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	exercise_id  TEXT NOT NULL,
	set_number   INTEGER NOT NULL,
	weight       REAL NOT NULL,
	reps         INTEGER NOT NULL,
	rpe          REAL NOT NULL,
	notes        TEXT NOT NULL DEFAULT '',
	completed    INTEGER NOT NULL DEFAULT 0,
	variation    TEXT NOT NULL,
	performed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workout_sets_user_exercise
	ON workout_sets (user_id, exercise_id, performed_at, set_number);
`

// Open opens (or creates) the SQLite database at path and ensures the schema
// exists. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir for %s: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// SQLite serializes writers; one connection also keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}
