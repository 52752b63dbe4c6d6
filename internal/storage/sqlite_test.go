package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// migratedStore opens a fresh database under a directory that does not
// exist yet and brings it to the current schema.
func migratedStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := migratedStore(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	var tables int
	require.NoError(t, store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name IN ('credentials', 'snapshots')
	`).Scan(&tables))
	assert.Equal(t, 2, tables)
}

func TestMigrateRejectsNewerSchema(t *testing.T) {
	store := migratedStore(t)
	_, err := store.db.Exec("PRAGMA user_version = 9")
	require.NoError(t, err)

	err = store.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than this build")
}

func TestTokenRoundTrip(t *testing.T) {
	store := migratedStore(t)
	ctx := context.Background()

	_, err := store.Token(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.SaveToken(ctx, &oauth2.Token{AccessToken: "a1", RefreshToken: "r1", TokenType: "Bearer", Expiry: expiry}))
	require.NoError(t, store.SaveToken(ctx, &oauth2.Token{AccessToken: "a2", RefreshToken: "r1"}))

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", tok.AccessToken)
	assert.Equal(t, "r1", tok.RefreshToken)
	assert.True(t, tok.Expiry.IsZero())

	require.NoError(t, store.ClearToken(ctx))
	_, err = store.Token(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveTokenValidation(t *testing.T) {
	store := migratedStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveToken(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, store.SaveToken(ctx, &oauth2.Token{}), ErrEmptyString)
}

func TestSnapshots(t *testing.T) {
	store := migratedStore(t)
	ctx := context.Background()

	_, err := store.LoadSnapshot(ctx, "cuentas")
	assert.ErrorIs(t, err, common.ErrNotFound)

	payload := json.RawMessage(`[{"id":7,"nombre":"Juan Pérez"},{"id":8,"nombre":"Ana"}]`)
	require.NoError(t, store.SaveSnapshot(ctx, "cuentas", payload))

	snap, err := store.LoadSnapshot(ctx, "cuentas")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.RowCount)
	assert.JSONEq(t, string(payload), string(snap.Payload))
	assert.WithinDuration(t, time.Now(), snap.FetchedAt, time.Minute)

	require.NoError(t, store.SaveSnapshot(ctx, "cuentas", json.RawMessage(`[]`)))
	snap, err = store.LoadSnapshot(ctx, "cuentas")
	require.NoError(t, err)
	assert.Zero(t, snap.RowCount)

	assert.ErrorIs(t, store.SaveSnapshot(ctx, "cuentas", json.RawMessage(`{"detail":"x"}`)), ErrInvalidJSON)

	require.NoError(t, store.ClearSnapshots(ctx))
	_, err = store.LoadSnapshot(ctx, "cuentas")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
