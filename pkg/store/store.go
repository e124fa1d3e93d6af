// Package store persists a virtual overlay's two deltas to SQLite (spec
// §6, ambient): a single-connection, WAL-journaled Open/Close/Config idiom
// over a schema that backs a flat {identity, source, kind} record pair
// rather than a full inode/dentry/data filesystem image.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed handle to a single persisted overlay.
type Store struct {
	db *sql.DB
}

// Config holds database configuration.
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// DefaultConfig returns a config with sensible defaults for path.
func DefaultConfig(path string) Config {
	return Config{Path: path, BusyTimeout: 5 * time.Second}
}

// Open opens or creates a SQLite-backed store at cfg.Path.
func Open(cfg Config) (*Store, error) {
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on&_synchronous=NORMAL",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}
