// Package database implements the persistent store for subscribers, sent
// articles, search history, and the alert log. The serving pipeline itself
// does not depend on it; collaborators (the alert dispatcher, optionally the
// refresher's served-dedup filter) consume it through small interfaces.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// NewConnection opens the SQLite database at path, creating it if missing.
func NewConnection(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL keeps reads from blocking the writer during refresh cycles.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return &DB{db}, nil
}
