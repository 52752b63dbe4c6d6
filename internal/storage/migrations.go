package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version this build reads and writes.
const ExpectedSchemaVersion = 2

type migration struct {
	name       string
	statements []string
}

// schema lists migrations in order; migration i brings the database to
// version i+1, recorded in PRAGMA user_version.
var schema = []migration{
	{
		name: "session credentials",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS credentials (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				access_token TEXT NOT NULL,
				refresh_token TEXT,
				token_type TEXT,
				expiry DATETIME,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		name: "table snapshot cache",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS snapshots (
				resource TEXT PRIMARY KEY,
				payload BLOB NOT NULL,
				row_count INTEGER NOT NULL DEFAULT 0,
				fetched_at DATETIME NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON snapshots(fetched_at)`,
		},
	},
}

// Migrate applies every pending migration, each in its own transaction.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := requireContext(ctx); err != nil {
		return err
	}

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version > len(schema) {
		return fmt.Errorf("database schema version %d is newer than this build (%d)", version, ExpectedSchemaVersion)
	}

	for i, m := range schema[version:] {
		target := version + i + 1
		if err := s.apply(ctx, target, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", target, m.name, err)
		}
		slog.Debug("Applied migration", "version", target, "name", m.name)
	}
	return nil
}

func (s *SQLiteStorage) apply(ctx context.Context, target int, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the applied schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
