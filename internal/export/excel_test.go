package export

import (
	"bytes"
	"testing"

	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	g := grid.New(grid.Config{
		Table:   model.TableMovimientos,
		Cuentas: []model.Cuenta{{ID: 2, Nombre: "Ferretería X"}},
	})
	g.SetRows([]model.Row{
		model.Movimiento{ID: 5, Fecha: "2024-01-02", Tipo: model.TipoPago, Cuenta: 2,
			Total: model.NewAmount(decimal.NewFromInt(30))},
		model.Movimiento{ID: 1, Fecha: "2024-01-01", Tipo: model.TipoFacturaVenta, Cuenta: 9,
			DescuentoTotal: model.NewAmount(decimal.NewFromInt(10)),
			Items:          []model.Item{{NombreProducto: "Tornillo"}}},
	})

	var calls []int
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g, func(done, total int) {
		assert.Equal(t, 2, total)
		calls = append(calls, done)
	}))
	assert.Equal(t, []int{1, 2}, calls)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Movimientos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "FECHA", "TIPO", "CUENTA", "N° COMPROBANTE", "CONCEPTO", "DESCUENTO", "TOTAL"}, rows[0])
	assert.Equal(t, []string{"1", "2024-01-01", "Factura venta", "ID: 9 (no encontrada)", "-", "1 producto/s", "10%", "-"}, rows[1])
	assert.Equal(t, []string{"5", "2024-01-02", "Pago", "Ferretería X", "-", "", "", "$30.00"}, rows[2])
}

func TestWriteXLSXEmpty(t *testing.T) {
	g := grid.New(grid.Config{Table: model.TableProductos})
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Productos")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
