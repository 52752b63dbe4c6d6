package model

import (
	"github.com/shopspring/decimal"
)

// Item is one product line of an invoice movement.
type Item struct {
	NombreProducto string          `json:"nombre_producto"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	DescuentoItem  Amount          `json:"descuento_item"`
}

var hundred = decimal.NewFromInt(100)

// Subtotal is precio × cantidad less the line discount percentage.
func (it Item) Subtotal() decimal.Decimal {
	gross := it.PrecioUnitario.Mul(it.Cantidad)
	if !it.DescuentoItem.Valid || it.DescuentoItem.Decimal.IsZero() {
		return gross
	}
	factor := decimal.NewFromInt(1).Sub(it.DescuentoItem.Decimal.Div(hundred))
	return gross.Mul(factor)
}

// Movimiento is a financial movement: invoice, payment, collection, salary...
type Movimiento struct {
	SaldoDiferencia   Amount `json:"saldo_diferencia"`
	Total             Amount `json:"total"`
	DescuentoTotal    Amount `json:"descuento_total"`
	NumeroComprobante *int   `json:"numero_comprobante"`
	Fecha             string `json:"fecha"`
	Tipo              string `json:"tipo"`
	Concepto          string `json:"concepto"`
	Items             []Item `json:"items,omitempty"`
	ID                int    `json:"id"`
	Cuenta            int    `json:"cuenta"`
}

// RowID implements Row.
func (m Movimiento) RowID() int { return m.ID }

// Field implements Row.
func (m Movimiento) Field(key string) any {
	switch key {
	case "id":
		return m.ID
	case "fecha":
		return m.Fecha
	case "tipo", "tipoMovimiento":
		return m.Tipo
	case "cuenta":
		return m.Cuenta
	case "total":
		return m.Total
	case "descuento_total":
		return m.DescuentoTotal
	case "concepto":
		return m.Concepto
	case "numero_comprobante":
		return m.NumeroComprobante
	case "saldo_diferencia":
		return m.SaldoDiferencia
	case "items":
		return m.Items
	}
	return nil
}

// HasItems reports whether the movement carries at least one line item.
func (m Movimiento) HasItems() bool {
	return len(m.Items) > 0
}

// IsInvoice reports whether the movement is a sales or purchase invoice.
func (m Movimiento) IsInvoice() bool {
	return IsInvoiceType(m.Tipo)
}
