package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/config"
	"github.com/Veraticus/the-books-must-balance/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name    string
		flags   viewFlags
		wantIDs []int
		wantErr bool
	}{
		{
			name:    "all movements sorted by id",
			flags:   viewFlags{table: "movimientos"},
			wantIDs: []int{1, 2, 3},
		},
		{
			name:    "petty cash skips invoices",
			flags:   viewFlags{table: "cajachica"},
			wantIDs: []int{1, 2},
		},
		{
			name:    "search by account name",
			flags:   viewFlags{table: "cuentas", search: "ana"},
			wantIDs: []int{1},
		},
		{
			name:    "selected dates",
			flags:   viewFlags{table: "movimientos", dates: []string{"2024-01-02"}},
			wantIDs: []int{2, 3},
		},
		{
			name:    "unknown table",
			flags:   viewFlags{table: "ventas"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := buildGrid(testutil.SampleSnapshot(), tt.flags, 0)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := make([]int, 0, len(g.Rows()))
			for _, row := range g.Rows() {
				ids = append(ids, row.RowID())
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestWriteTable(t *testing.T) {
	g, err := buildGrid(testutil.SampleSnapshot(), viewFlags{table: "cuentas", search: "bruno"}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, g))
	out := ansi.Strip(buf.String())

	assert.Contains(t, out, "Cuentas")
	assert.Contains(t, out, "NOMBRE")
	assert.Contains(t, out, "Bruno")
	assert.NotContains(t, out, "Ana")
	assert.Contains(t, out, "1 fila")
}

func TestWriteTableEmpty(t *testing.T) {
	g, err := buildGrid(testutil.SampleSnapshot(), viewFlags{table: "productos", search: "martillo"}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, g))
	assert.Contains(t, ansi.Strip(buf.String()), "No hay datos disponibles")
}

func TestExportFile(t *testing.T) {
	g, err := buildGrid(testutil.SampleSnapshot(), viewFlags{table: "movimientos"}, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "movimientos.xlsx")
	require.NoError(t, exportFile(path, g, io.Discard))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Movimientos")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestLoadSnapshotCached(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	settings := config.Settings{StoragePath: db.Path}

	_, err := loadSnapshot(ctx, settings, true)
	assert.ErrorIs(t, err, common.ErrNotFound)

	db.SeedSnapshot(testutil.SampleSnapshot())

	got, err := loadSnapshot(ctx, settings, true)
	require.NoError(t, err)
	assert.Len(t, got.Movimientos, 3)
	assert.Len(t, got.Cuentas, 2)
	assert.Equal(t, "Tornillo", got.Productos[0].TipoProducto)
}

func TestLoadSnapshotRequiresBackend(t *testing.T) {
	settings := config.Settings{StoragePath: testutil.SetupTestDB(t).Path}
	_, err := loadSnapshot(context.Background(), settings, false)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
