package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsZeroEquivalent(t *testing.T) {
	five := 5
	zero := 0
	tests := []struct {
		value any
		name  string
		want  bool
	}{
		{name: "nil", value: nil, want: true},
		{name: "int zero", value: 0, want: true},
		{name: "string zero", value: "0", want: true},
		{name: "string zero with decimals", value: "0.00", want: true},
		{name: "empty string", value: "", want: true},
		{name: "invalid null decimal", value: decimal.NullDecimal{}, want: true},
		{name: "zero null decimal", value: decimal.NewNullDecimal(decimal.Zero), want: true},
		{name: "nil int pointer", value: (*int)(nil), want: true},
		{name: "zero int pointer", value: &zero, want: true},
		{name: "five", value: 5, want: false},
		{name: "five string", value: "5", want: false},
		{name: "five pointer", value: &five, want: false},
		{name: "five decimal", value: decimal.NewNullDecimal(decimal.NewFromInt(5)), want: false},
		{name: "non numeric string", value: "abc", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsZeroEquivalent(tt.value))
		})
	}
}

func TestSortByID(t *testing.T) {
	rows := []Row{Movimiento{ID: 5}, Movimiento{ID: 1}, Movimiento{ID: 3}}

	sorted := SortByID(rows)

	ids := make([]int, 0, len(sorted))
	for _, r := range sorted {
		ids = append(ids, r.RowID())
	}
	assert.Equal(t, []int{1, 3, 5}, ids)
	assert.Equal(t, 5, rows[0].RowID(), "input must not be reordered")
}

func TestItemSubtotal(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "no discount",
			item: Item{PrecioUnitario: decimal.NewFromInt(5), Cantidad: decimal.NewFromInt(10)},
			want: "50.00",
		},
		{
			name: "ten percent discount",
			item: Item{
				PrecioUnitario: decimal.NewFromInt(20),
				Cantidad:       decimal.NewFromInt(2),
				DescuentoItem:  NewAmount(decimal.NewFromInt(10)),
			},
			want: "36.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Subtotal().StringFixed(2))
		})
	}
}

func TestMovimientoUnmarshal(t *testing.T) {
	payload := `{
		"id": 1,
		"fecha": "2024-03-01",
		"tipo": "factura_venta",
		"cuenta": 2,
		"total": "50.00",
		"descuento_total": null,
		"concepto": null,
		"items": [{"nombre_producto": "Tornillo", "cantidad": "10", "precio_unitario": "5", "descuento_item": "0"}]
	}`

	var m Movimiento
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	assert.Equal(t, 1, m.RowID())
	assert.Equal(t, "2024-03-01", m.Field("fecha"))
	assert.True(t, m.Total.Valid)
	assert.False(t, m.DescuentoTotal.Valid)
	assert.True(t, m.IsInvoice())
	require.Len(t, m.Items, 1)
	assert.Equal(t, "Tornillo", m.Items[0].NombreProducto)
	assert.Equal(t, "50.00", m.Items[0].Subtotal().StringFixed(2))
}

func TestSnapshotRows(t *testing.T) {
	snap := Snapshot{
		Movimientos: []Movimiento{
			{ID: 1, Tipo: TipoFacturaVenta},
			{ID: 2, Tipo: TipoPago},
			{ID: 3, Tipo: "sueldo"},
		},
		Cuentas:   []Cuenta{{ID: 7}},
		Productos: []Producto{{ID: 9}},
	}

	assert.Len(t, snap.Rows(TableMovimientos), 3)
	caja := snap.Rows(TableCajaChica)
	require.Len(t, caja, 2)
	assert.Equal(t, 2, caja[0].RowID())
	assert.Len(t, snap.Rows(TableCuentas), 1)
	assert.Len(t, snap.Rows(TableProductos), 1)
}

func TestProductoClass(t *testing.T) {
	low, high := 2, 40
	assert.Equal(t, ClasificacionBaja, Producto{Cantidad: &low}.Class())
	assert.Equal(t, ClasificacionNormal, Producto{Cantidad: &high}.Class())
	assert.Equal(t, ClasificacionNormal, Producto{}.Class())
	assert.Equal(t, ClasificacionDestacado, Producto{Clasificacion: ClasificacionDestacado, Cantidad: &low}.Class())
}

func TestParseTableType(t *testing.T) {
	got, err := ParseTableType(" Cuentas ")
	require.NoError(t, err)
	assert.Equal(t, TableCuentas, got)
	assert.Equal(t, TableMovimientos, TableCajaChica.Source())

	_, err = ParseTableType("ventas")
	assert.Error(t, err)
}
