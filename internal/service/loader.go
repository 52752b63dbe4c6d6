package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/model"
)

var resources = []model.TableType{model.TableMovimientos, model.TableCuentas, model.TableProductos}

// Loader fetches full snapshots of every table. The cache is optional.
type Loader struct {
	fetcher Fetcher
	cache   SnapshotCache
}

// NewLoader creates a loader. cache may be nil.
func NewLoader(fetcher Fetcher, cache SnapshotCache) *Loader {
	return &Loader{fetcher: fetcher, cache: cache}
}

// Load fetches every table from the backend and refreshes the cache.
func (l *Loader) Load(ctx context.Context) (model.Snapshot, error) {
	raws := make(map[model.TableType]json.RawMessage, len(resources))
	for _, t := range resources {
		raw, err := l.fetcher.ListRaw(ctx, string(t))
		if err != nil {
			return model.Snapshot{}, err
		}
		raws[t] = raw
	}

	snap, err := decode(raws)
	if err != nil {
		return model.Snapshot{}, err
	}

	if l.cache != nil {
		for t, raw := range raws {
			if err := l.cache.SaveSnapshot(ctx, string(t), raw); err != nil {
				common.LogError(err, "Failed to cache snapshot", common.Fields{"resource": t})
			}
		}
	}

	common.LogDebug("Loaded snapshot", common.Fields{
		"movimientos": len(snap.Movimientos),
		"cuentas":     len(snap.Cuentas),
		"productos":   len(snap.Productos),
	})
	return snap, nil
}

// Cached returns the last cached snapshot. ok is false when any table has
// never been cached.
func (l *Loader) Cached(ctx context.Context) (model.Snapshot, bool) {
	if l.cache == nil {
		return model.Snapshot{}, false
	}
	raws := make(map[model.TableType]json.RawMessage, len(resources))
	for _, t := range resources {
		cached, err := l.cache.LoadSnapshot(ctx, string(t))
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				common.LogError(err, "Failed to read cached snapshot", common.Fields{"resource": t})
			}
			return model.Snapshot{}, false
		}
		raws[t] = cached.Payload
	}
	snap, err := decode(raws)
	if err != nil {
		common.LogError(err, "Ignoring unreadable cached snapshot", nil)
		return model.Snapshot{}, false
	}
	return snap, true
}

func decode(raws map[model.TableType]json.RawMessage) (model.Snapshot, error) {
	var snap model.Snapshot
	targets := map[model.TableType]any{
		model.TableMovimientos: &snap.Movimientos,
		model.TableCuentas:     &snap.Cuentas,
		model.TableProductos:   &snap.Productos,
	}
	for t, target := range targets {
		raw, ok := raws[t]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return model.Snapshot{}, fmt.Errorf("failed to decode %s: %w", t, err)
		}
	}
	return snap, nil
}
