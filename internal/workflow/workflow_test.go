package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	fields   map[string]any
	resource string
	method   string
	id       int
}

type fakeBackend struct {
	err   error
	calls []call
}

func (f *fakeBackend) Patch(_ context.Context, resource string, id int, fields map[string]any) error {
	f.calls = append(f.calls, call{method: "PATCH", resource: resource, id: id, fields: fields})
	return f.err
}

func (f *fakeBackend) Delete(_ context.Context, resource string, id int) error {
	f.calls = append(f.calls, call{method: "DELETE", resource: resource, id: id})
	return f.err
}

func TestResolveResource(t *testing.T) {
	tests := []struct {
		table   string
		want    string
		wantErr bool
	}{
		{table: "movimientos", want: ResourceMovimientos},
		{table: "cajachica", want: ResourceMovimientos},
		{table: "cuenta", want: ResourceCuentas},
		{table: "producto", want: ResourceProductos},
		{table: "movimiento_items", want: ResourceMovimientosItems},
		{table: "movimiento-items", want: ResourceMovimientosItems},
		{table: "movimientoItems", want: ResourceMovimientosItems},
		{table: "ventas", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			got, err := ResolveResource(tt.table)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrUnsupportedTable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// settle confirms the open dialog, runs its call and applies the outcome the
// way the browser does across three messages.
func settle(t *testing.T, w *Workflow) error {
	t.Helper()
	ticket, err := w.Confirm()
	if err != nil {
		return err
	}
	o := w.Execute(context.Background(), ticket)
	assert.True(t, w.Resolve(o), "outcome belongs to the open dialog")
	return o.Err
}

func TestDeleteSuccessRefreshesOnce(t *testing.T) {
	backend := &fakeBackend{}
	refreshes := 0
	w := New(backend, func() { refreshes++ })

	_, err := w.ProposeDelete(grid.DeleteIntent{Table: model.TableProductos, RowID: 9, Row: model.Producto{ID: 9}})
	require.NoError(t, err)

	require.NoError(t, settle(t, w))
	assert.Equal(t, 1, refreshes)
	assert.Nil(t, w.Active(), "dialog closes on success")
	assert.Equal(t, []call{{method: "DELETE", resource: ResourceProductos, id: 9}}, backend.calls)
}

func TestDeleteFailureKeepsDialog(t *testing.T) {
	backend := &fakeBackend{err: errors.New("No se puede eliminar: producto con movimientos")}
	refreshes := 0
	w := New(backend, func() { refreshes++ })

	_, err := w.ProposeDelete(grid.DeleteIntent{Table: model.TableProductos, RowID: 9, Row: model.Producto{ID: 9}})
	require.NoError(t, err)

	assert.Error(t, settle(t, w))
	assert.Zero(t, refreshes)
	d := w.Active()
	require.NotNil(t, d)
	assert.Equal(t, PhaseFailed, d.Phase)
	assert.Equal(t, "No se puede eliminar: producto con movimientos", d.Err)

	backend.err = nil
	require.NoError(t, settle(t, w), "retry after failure")
	assert.Equal(t, 1, refreshes)
	assert.Nil(t, w.Active())
}

func TestEditSendsOnlyChangedField(t *testing.T) {
	backend := &fakeBackend{}
	w := New(backend, nil)

	d, err := w.ProposeEdit(grid.EditIntent{Table: model.TableCajaChica, RowID: 3, Field: "total", PrevValue: "10", NewValue: "12.5"})
	require.NoError(t, err)
	assert.Equal(t, "Confirmar Cambios", d.Title())
	assert.Equal(t, ResourceMovimientos, d.Resource)

	require.NoError(t, settle(t, w))
	require.Len(t, backend.calls, 1)
	got := backend.calls[0]
	assert.Equal(t, "PATCH", got.method)
	assert.Equal(t, 3, got.id)
	require.Len(t, got.fields, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.fields["total"].(decimal.Decimal)))
}

func TestStaleOutcomeIgnored(t *testing.T) {
	backend := &fakeBackend{err: errors.New("boom")}
	refreshes := 0
	w := New(backend, func() { refreshes++ })

	_, err := w.ProposeDelete(grid.DeleteIntent{Table: model.TableCuentas, RowID: 1, Row: model.Cuenta{ID: 1}})
	require.NoError(t, err)
	ticket, err := w.Confirm()
	require.NoError(t, err)

	w.Dismiss()
	_, err = w.ProposeDelete(grid.DeleteIntent{Table: model.TableCuentas, RowID: 2, Row: model.Cuenta{ID: 2}})
	require.NoError(t, err)

	assert.False(t, w.Resolve(w.Execute(context.Background(), ticket)))
	d := w.Active()
	require.NotNil(t, d)
	assert.Equal(t, 2, d.RowID)
	assert.Equal(t, PhaseProposed, d.Phase)
	assert.Empty(t, d.Err)
	assert.Zero(t, refreshes)

	backend.err = nil
	w.Dismiss()
	_, err = w.ProposeDelete(grid.DeleteIntent{Table: model.TableCuentas, RowID: 1, Row: model.Cuenta{ID: 1}})
	require.NoError(t, err)
	ticket, err = w.Confirm()
	require.NoError(t, err)
	w.Dismiss()
	assert.False(t, w.Resolve(w.Execute(context.Background(), ticket)))
	assert.Equal(t, 1, refreshes, "a late success still reconciles the table")
}

func TestConfirmGuards(t *testing.T) {
	w := New(&fakeBackend{}, nil)

	_, err := w.Confirm()
	assert.ErrorIs(t, err, ErrNoDialog)

	_, err = w.ProposeDelete(grid.DeleteIntent{Table: model.TableCuentas, RowID: 1})
	require.NoError(t, err)
	_, err = w.ProposeDelete(grid.DeleteIntent{Table: model.TableCuentas, RowID: 2})
	assert.ErrorIs(t, err, ErrDialogOpen)

	_, err = w.Confirm()
	require.NoError(t, err)
	_, err = w.Confirm()
	assert.ErrorIs(t, err, ErrRowBusy)

	w.Dismiss()
	_, err = w.ProposeDelete(grid.DeleteIntent{Table: model.TableCuentas, RowID: 1})
	require.NoError(t, err)
	_, err = w.Confirm()
	assert.ErrorIs(t, err, ErrRowBusy, "the dismissed call on the same row is still in flight")

	_, err = w.ProposeEdit(grid.EditIntent{Table: model.TableType("ventas")})
	assert.Error(t, err)
}

func TestDeletePreview(t *testing.T) {
	stock := 4
	got := DeletePreview(model.TableProductos, model.Producto{
		ID: 9, TipoProducto: "Clavo", Cantidad: &stock,
	})
	assert.Equal(t, []Field{
		{Label: "id", Value: "9"},
		{Label: "tipo_producto", Value: "Clavo"},
		{Label: "cantidad", Value: "4"},
	}, got)

	mov := DeletePreview(model.TableMovimientos, model.Movimiento{
		ID: 1, Fecha: "2024-01-01", Tipo: "pago", Total: model.NewAmount(decimal.NewFromInt(30)),
	})
	assert.Equal(t, []Field{
		{Label: "id", Value: "1"},
		{Label: "fecha", Value: "2024-01-01"},
		{Label: "tipo", Value: "pago"},
		{Label: "concepto", Value: ""},
		{Label: "total", Value: "30"},
	}, mov)
}
