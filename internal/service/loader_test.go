package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/registry"
	"github.com/Veraticus/the-books-must-balance/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	err  error
	data map[string]string
}

func (f *fakeFetcher) ListRaw(_ context.Context, resource string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.data[resource]), nil
}

func TestLoaderLoadAndCache(t *testing.T) {
	ctx := context.Background()
	cache := testutil.SetupTestDB(t).Storage
	fetcher := &fakeFetcher{data: map[string]string{
		"movimientos": `[{"id":1,"fecha":"2024-01-01","tipo":"pago","cuenta":7,"total":"10.00"}]`,
		"cuentas":     `[{"id":7,"nombre":"Juan Pérez","tipo_cuenta":"cliente"}]`,
		"productos":   `[{"id":3,"tipo_producto":"Tornillo","cantidad":4}]`,
	}}
	loader := NewLoader(fetcher, cache)

	_, ok := loader.Cached(ctx)
	assert.False(t, ok)

	snap, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Movimientos, 1)
	assert.Equal(t, "10", snap.Movimientos[0].Total.Decimal.String())
	require.Len(t, snap.Cuentas, 1)
	require.Len(t, snap.Productos, 1)

	fetcher.err = errors.New("offline")
	_, err = loader.Load(ctx)
	assert.Error(t, err)

	cached, ok := loader.Cached(ctx)
	require.True(t, ok)
	assert.Equal(t, snap, cached)
}

func TestLoaderWithoutCache(t *testing.T) {
	loader := NewLoader(&fakeFetcher{data: map[string]string{"movimientos": `[]`}}, nil)
	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Movimientos)
	assert.Nil(t, snap.Cuentas)

	_, ok := loader.Cached(context.Background())
	assert.False(t, ok)
}

func TestLoaderRejectsMalformedRows(t *testing.T) {
	loader := NewLoader(&fakeFetcher{data: map[string]string{"cuentas": `[{"id":"siete"}]`}}, nil)
	_, err := loader.Load(context.Background())
	assert.ErrorContains(t, err, "cuentas")
}

func TestLoaderAcceptsNullLiteralAmounts(t *testing.T) {
	loader := NewLoader(&fakeFetcher{data: map[string]string{
		"movimientos": `[{"id":1,"fecha":"2024-01-01","tipo":"pago","cuenta":7,"total":"NULL"}]`,
		"cuentas":     `[{"id":7,"nombre":"Juan Pérez","monto":"NULL"},{"id":8,"nombre":"Ana","monto":"15"}]`,
		"productos":   `[{"id":3,"tipo_producto":"Tornillo","precio_venta_unitario":""}]`,
	}}, nil)

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Movimientos, 1)
	require.Len(t, snap.Cuentas, 2)
	require.Len(t, snap.Productos, 1)
	assert.False(t, snap.Productos[0].PrecioVentaUnitario.Valid)

	render := func(table model.TableType, row model.Row, key string) string {
		col, ok := registry.Find(registry.Columns(table, snap.Cuentas), key)
		require.True(t, ok, key)
		return grid.RenderCell(row, col, row.Field(key)).String()
	}
	assert.Equal(t, "$0", render(model.TableCuentas, snap.Cuentas[0], "monto"))
	assert.Equal(t, "$15.00", render(model.TableCuentas, snap.Cuentas[1], "monto"))
	assert.Equal(t, "-", render(model.TableMovimientos, snap.Movimientos[0], "total"))
}
