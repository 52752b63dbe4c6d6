package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage stores tokens and snapshots in SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// dsnParams enables WAL and waits up to 5s on a locked database.
var dsnParams = url.Values{
	"_journal_mode": {"WAL"},
	"_busy_timeout": {"5000"},
}

// NewSQLiteStorage opens the database at dbPath, creating the file and its
// directory on first use. Call Migrate before anything else.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := requireNonBlank(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?"+dsnParams.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s: %w", dbPath, err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Close releases the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
