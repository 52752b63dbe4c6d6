package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/the-books-must-balance/internal/common"
)

// Snapshot is the cached body of the last successful list of a resource.
type Snapshot struct {
	FetchedAt time.Time
	Resource  string
	Payload   json.RawMessage
	RowCount  int
}

// SaveSnapshot replaces the cached rows of a resource. payload must be a
// JSON array.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, resource string, payload json.RawMessage) error {
	if err := requireContext(ctx); err != nil {
		return err
	}
	if err := requireNonBlank(resource, "resource"); err != nil {
		return err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(payload, &rows); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidJSON, resource, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (resource, payload, row_count, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET
			payload = excluded.payload,
			row_count = excluded.row_count,
			fetched_at = excluded.fetched_at
	`, resource, []byte(payload), len(rows), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot of %s: %w", resource, err)
	}
	return nil
}

// LoadSnapshot returns the cached rows of a resource or common.ErrNotFound.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context, resource string) (*Snapshot, error) {
	if err := requireContext(ctx); err != nil {
		return nil, err
	}
	if err := requireNonBlank(resource, "resource"); err != nil {
		return nil, err
	}

	snap := Snapshot{Resource: resource}
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload, row_count, fetched_at FROM snapshots WHERE resource = ?
	`, resource).Scan(&payload, &snap.RowCount, &snap.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot of %s: %w", resource, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot of %s: %w", resource, err)
	}
	snap.Payload = payload
	return &snap, nil
}

// ClearSnapshots drops every cached snapshot.
func (s *SQLiteStorage) ClearSnapshots(ctx context.Context) error {
	if err := requireContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
