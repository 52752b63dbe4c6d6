package testutil

import (
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/shopspring/decimal"
)

// Money parses s into a present amount. It panics on malformed input.
func Money(s string) model.Amount {
	return model.NewAmount(decimal.RequireFromString(s))
}

// SampleSnapshot returns two accounts, three movements on two dates (one of
// them an invoice) and one product.
//
//	cuentas:     1 Ana (cliente), 2 Bruno (proveedor)
//	movimientos: 1 pago 2024-01-01 -> Ana
//	             2 cobranza 2024-01-02 -> Bruno
//	             3 factura_venta 2024-01-02 -> Bruno
//	productos:   1 Tornillo
func SampleSnapshot() model.Snapshot {
	return model.Snapshot{
		Cuentas: []model.Cuenta{
			{ID: 2, Nombre: "Bruno", TipoCuenta: model.TipoCuentaProveedor, Monto: Money("10")},
			{ID: 1, Nombre: "Ana", TipoCuenta: model.TipoCuentaCliente, Monto: Money("0")},
		},
		Movimientos: []model.Movimiento{
			{ID: 1, Fecha: "2024-01-01", Tipo: model.TipoPago, Cuenta: 1, Total: Money("50")},
			{ID: 2, Fecha: "2024-01-02", Tipo: model.TipoCobranza, Cuenta: 2, Total: Money("20")},
			{ID: 3, Fecha: "2024-01-02", Tipo: model.TipoFacturaVenta, Cuenta: 2, Total: Money("100")},
		},
		Productos: []model.Producto{{ID: 1, TipoProducto: "Tornillo"}},
	}
}
