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
CREATE TABLE IF NOT EXISTS employees (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    position   TEXT NOT NULL,
    created_at TEXT NOT NULL,
    CONSTRAINT employees_name_key UNIQUE (name),
    CONSTRAINT employees_email_key UNIQUE (email)
);
`

// Open は SQLite データベースを開き、スキーマを適用します。
// PostgreSQL と異なりマイグレーションツールを使わず、起動時に
// CREATE TABLE IF NOT EXISTS で初期化します。
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "employees.db"
	}

	if !isMemoryPath(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("sqlite: create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}

	return db, nil
}

func isMemoryPath(path string) bool {
	return strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
}
