package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// schema holds the two collections the application owns. Column names match
// the historical database file, so an existing bloc.db keeps working.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		correo     TEXT    NOT NULL UNIQUE,
		contrasena TEXT    NOT NULL,
		nombre     TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario TEXT    NOT NULL,
		texto   TEXT    NOT NULL,
		fecha   TEXT    NOT NULL DEFAULT '',
		done    INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_usuario ON tasks(usuario)`,
}

// DefaultDBPath places the database under XDG_DATA_HOME (or the equivalent
// home fallback), creating the directory when needed.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "taskbloc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "bloc.db"), nil
}

// NewDB opens (or creates) the SQLite database at path, enables WAL and
// ensures the schema exists. An empty path selects DefaultDBPath.
func NewDB(path string) (*sql.DB, error) {
	if path == "" {
		var err error
		path, err = DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("determine db path: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return db, nil
}
