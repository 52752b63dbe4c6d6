// Package registry holds the per-table column definitions, the row colour
// lookup and the editable-field rules.
package registry

import (
	"fmt"

	"github.com/Veraticus/the-books-must-balance/internal/model"
)

// LoadingPlaceholder is shown for account columns while the accounts side
// table has not loaded.
const LoadingPlaceholder = "Cargando..."

// Placeholder is shown for absent values.
const Placeholder = "-"

// Formatter renders a raw value. It must be pure given its inputs and the side
// table captured when the column list was built.
type Formatter func(raw any, row model.Row) string

// Column describes one table column.
type Column struct {
	Format Formatter
	Key    string
	Label  string
	Width  int
}

type columnsFunc func(cuentas model.CuentaIndex, loaded bool) []Column

var registry = map[model.TableType]columnsFunc{
	model.TableMovimientos: movimientosColumns,
	model.TableCajaChica:   cajaChicaColumns,
	model.TableCuentas:     cuentasColumns,
	model.TableProductos:   productosColumns,
}

// Columns returns the ordered columns for a table. cuentas may be empty while
// it is still loading; account columns then render LoadingPlaceholder.
func Columns(t model.TableType, cuentas []model.Cuenta) []Column {
	build, ok := registry[t]
	if !ok {
		return nil
	}
	return build(model.IndexCuentas(cuentas), len(cuentas) > 0)
}

// Find returns the column with key, if present.
func Find(columns []Column, key string) (Column, bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

func cuentaFormatter(idx model.CuentaIndex, loaded bool) Formatter {
	return func(raw any, _ model.Row) string {
		if !loaded {
			return LoadingPlaceholder
		}
		id, ok := raw.(int)
		if !ok {
			return Placeholder
		}
		if name, found := idx.Name(id); found {
			return name
		}
		return fmt.Sprintf("ID: %d (no encontrada)", id)
	}
}

// formatAmount renders two decimals, or the placeholder for zero-equivalent
// values.
func formatAmount(raw any, _ model.Row) string {
	if model.IsZeroEquivalent(raw) {
		return Placeholder
	}
	d, ok := model.ToDecimal(raw)
	if !ok {
		return Placeholder
	}
	return d.StringFixed(2)
}

// formatPercent keeps the shortest spelling of a percentage: 5 stays "5".
func formatPercent(raw any, _ model.Row) string {
	if model.IsZeroEquivalent(raw) {
		return Placeholder
	}
	d, ok := model.ToDecimal(raw)
	if !ok {
		return Placeholder
	}
	return d.String()
}

func formatPrice(raw any, row model.Row) string {
	s := formatAmount(raw, row)
	if s == Placeholder {
		return s
	}
	return "$" + s
}

func formatOptional(raw any, _ model.Row) string {
	if model.IsNullish(raw) {
		return Placeholder
	}
	if s := model.Stringify(raw); s != "" {
		return s
	}
	return Placeholder
}

func movimientosColumns(idx model.CuentaIndex, loaded bool) []Column {
	return []Column{
		{Key: "id", Label: "ID", Width: 6},
		{Key: "fecha", Label: "FECHA", Width: 12},
		{Key: "tipo", Label: "TIPO", Width: 16},
		{Key: "cuenta", Label: "CUENTA", Width: 22, Format: cuentaFormatter(idx, loaded)},
		{Key: "numero_comprobante", Label: "N° COMPROBANTE", Width: 14, Format: formatOptional},
		{Key: "concepto", Label: "CONCEPTO", Width: 24},
		{Key: "descuento_total", Label: "DESCUENTO", Width: 10, Format: formatPercent},
		{Key: "total", Label: "TOTAL", Width: 12, Format: formatAmount},
	}
}

func cajaChicaColumns(idx model.CuentaIndex, loaded bool) []Column {
	return []Column{
		{Key: "id", Label: "ID", Width: 6},
		{Key: "fecha", Label: "FECHA", Width: 12},
		{Key: "tipo", Label: "TIPO", Width: 14},
		{Key: "concepto", Label: "DETALLE", Width: 24},
		{Key: "cuenta", Label: "CUENTA", Width: 22, Format: cuentaFormatter(idx, loaded)},
		{Key: "debe", Label: "DEBE", Width: 12, Format: formatDebe},
		{Key: "haber", Label: "HABER", Width: 12, Format: formatHaber},
		{Key: "saldo_diferencia", Label: "SALDO", Width: 12, Format: formatSaldo},
	}
}

// Collections are money in; every other non-invoice movement is money out.
func formatDebe(_ any, row model.Row) string {
	if tipo, _ := row.Field("tipo").(string); tipo != model.TipoCobranza {
		return ""
	}
	return signedTotal(row)
}

func formatHaber(_ any, row model.Row) string {
	tipo, _ := row.Field("tipo").(string)
	if tipo == model.TipoCobranza || model.IsInvoiceType(tipo) {
		return ""
	}
	return signedTotal(row)
}

func signedTotal(row model.Row) string {
	d, ok := model.ToDecimal(row.Field("total"))
	if !ok {
		return ""
	}
	return "$" + d.StringFixed(2)
}

func formatSaldo(raw any, _ model.Row) string {
	d, ok := model.ToDecimal(raw)
	if !ok {
		return Placeholder
	}
	return "$" + d.StringFixed(2)
}

func cuentasColumns(model.CuentaIndex, bool) []Column {
	return []Column{
		{Key: "id", Label: "ID", Width: 6},
		{Key: "nombre", Label: "NOMBRE", Width: 24},
		{Key: "contacto_mail", Label: "E-MAIL", Width: 26},
		{Key: "contacto_telefono", Label: "TELÉFONO", Width: 16},
		{Key: "tipo_cuenta", Label: "TIPO de CUENTA", Width: 14},
		{Key: "monto", Label: "MONTO", Width: 12, Format: formatAmount},
	}
}

func productosColumns(model.CuentaIndex, bool) []Column {
	return []Column{
		{Key: "id", Label: "ID", Width: 6},
		{Key: "tipo_producto", Label: "PRODUCTO", Width: 28},
		{Key: "precio_venta_unitario", Label: "PRECIO VENTA", Width: 14, Format: formatPrice},
		{Key: "costo_unitario", Label: "COSTO", Width: 12, Format: formatPrice},
		{Key: "cantidad", Label: "STOCK", Width: 8, Format: formatOptional},
	}
}
