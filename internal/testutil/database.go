// Package testutil provides shared fixtures for tests: a migrated SQLite
// database in a temp dir and a small sample of every table.
package testutil

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/storage"
)

// TestDB is a migrated database that is closed when the test ends.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Path    string
}

// SetupTestDB creates a database file under t.TempDir and runs migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "books.db")
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, Path: path, t: t}
}

// SeedSnapshot caches snap as if it had just been fetched.
func (db *TestDB) SeedSnapshot(snap model.Snapshot) {
	db.t.Helper()

	resources := map[model.TableType]any{
		model.TableMovimientos: snap.Movimientos,
		model.TableCuentas:     snap.Cuentas,
		model.TableProductos:   snap.Productos,
	}
	for table, rows := range resources {
		payload, err := json.Marshal(rows)
		if err != nil {
			db.t.Fatalf("failed to encode %s: %v", table, err)
		}
		if err := db.Storage.SaveSnapshot(context.Background(), string(table), payload); err != nil {
			db.t.Fatalf("failed to seed %s: %v", table, err)
		}
	}
}
