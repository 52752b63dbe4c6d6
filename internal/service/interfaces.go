// Package service defines the collaborators the table views depend on and
// the loader that assembles full table snapshots from them.
package service

import (
	"context"
	"encoding/json"

	"github.com/Veraticus/the-books-must-balance/internal/storage"
)

// Fetcher lists a backend resource as a raw JSON array.
type Fetcher interface {
	ListRaw(ctx context.Context, resource string) (json.RawMessage, error)
}

// SnapshotCache keeps the last successful list of each resource.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, resource string, payload json.RawMessage) error
	LoadSnapshot(ctx context.Context, resource string) (*storage.Snapshot, error)
}
