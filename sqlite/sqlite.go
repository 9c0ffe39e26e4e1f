// Package sqlite persists agenda records to a single SQLite file. Records
// are stored as JSON payloads keyed by entity kind and identifier.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	kind    TEXT    NOT NULL,
	id      INTEGER NOT NULL,
	payload BLOB    NOT NULL,
	PRIMARY KEY (kind, id)
);
CREATE TABLE IF NOT EXISTS sequences (
	kind TEXT    PRIMARY KEY,
	next INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS slots (
	kind    TEXT NOT NULL,
	caller  TEXT NOT NULL,
	payload BLOB NOT NULL,
	PRIMARY KEY (kind, caller)
);`

// DB is an open agenda database shared by the stores of every entity kind.
type DB struct {
	db *sql.DB
}

// Open creates the file and its tables if needed.
func Open(path string) (*DB, error) {
	if path == "" {
		path = "agenda.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("sqlite: create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create tables: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func validateKind(kind string) error {
	if strings.TrimSpace(kind) == "" {
		return errors.New("sqlite: kind is required")
	}
	return nil
}

func (d *DB) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := d.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
