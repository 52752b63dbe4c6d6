package grid

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/registry"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	currencyKeys = map[string]bool{"total": true, "monto": true, "estado": true}
	percentKeys  = map[string]bool{"descuento": true, "descuento_total": true}
	tipoKeys     = map[string]bool{"tipo": true, "tipo_cuenta": true, "tipoMovimiento": true}
)

var (
	upper = cases.Upper(language.Spanish)
	lower = cases.Lower(language.Spanish)
)

// Cell is the rendered content of one cell.
type Cell struct {
	Prefix string
	Text   string
	Suffix string
}

// String joins the symbols and the text.
func (c Cell) String() string {
	return c.Prefix + c.Text + c.Suffix
}

// RenderCell runs the display pipeline for one cell. raw is the value to
// show, normally row.Field(col.Key).
func RenderCell(row model.Row, col registry.Column, raw any) Cell {
	if col.Key == "descuento_total" && model.IsZeroEquivalent(raw) {
		return Cell{}
	}

	var text string
	switch {
	case col.Key == "monto" && (model.IsNullish(raw) || model.IsZeroEquivalent(raw)):
		text = "0"
	case col.Format != nil:
		text = col.Format(raw, row)
	case model.IsNullish(raw):
		text = registry.Placeholder
	default:
		text = model.Stringify(raw)
	}

	if col.Key == "concepto" {
		if m, ok := row.(model.Movimiento); ok && m.IsInvoice() && m.HasItems() {
			text = fmt.Sprintf("%d producto/s", len(m.Items))
		}
	}

	if tipoKeys[col.Key] && text != registry.Placeholder {
		text = FormatTipo(text)
	}

	// Placeholders stay bare: a missing total reads "-", not "$-".
	cell := Cell{Text: text}
	if text == "" || text == registry.Placeholder {
		return cell
	}
	if currencyKeys[col.Key] {
		cell.Prefix = "$"
	}
	if percentKeys[col.Key] {
		cell.Suffix = "%"
	}
	return cell
}

// FormatTipo turns an enum value into a label: factura_venta becomes
// "Factura venta".
func FormatTipo(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return value
	}
	r := []rune(lower.String(value))
	return upper.String(string(r[0])) + string(r[1:])
}

// Preview is the floating content shown for a hovered cell.
type Preview struct {
	Background string
	Content    string
	Items      []model.Item
	Total      int
}

// Visible reports whether the preview has anything to show.
func (p Preview) Visible() bool {
	return (p.Content != "" && p.Content != registry.Placeholder) || len(p.Items) > 0
}

// More reports whether some items did not fit the compact list.
func (p Preview) More() bool {
	return p.Total > len(p.Items)
}

func buildPreview(t model.TableType, row model.Row, col registry.Column, cell Cell, limit int) Preview {
	p := Preview{
		Background: registry.RowColor(t, row),
		Content:    cell.String(),
	}
	m, ok := row.(model.Movimiento)
	if !ok || col.Key != "concepto" || !m.HasItems() {
		return p
	}
	p.Total = len(m.Items)
	if limit <= 0 || limit > len(m.Items) {
		limit = len(m.Items)
	}
	p.Items = m.Items[:limit]
	return p
}

// LargeListLines renders one line per product: name, quantity, unit price
// and discounted subtotal.
func LargeListLines(items []model.Item) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s | %s | $%s | $%s",
			it.NombreProducto,
			it.Cantidad.String(),
			it.PrecioUnitario.StringFixed(2),
			it.Subtotal().StringFixed(2)))
	}
	return lines
}
