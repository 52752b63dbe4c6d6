package search

import (
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/model"
)

// Context carries the side tables a matcher may consult.
type Context struct {
	cuentas model.CuentaIndex
}

// NewContext indexes the accounts used to resolve movement account ids.
func NewContext(cuentas []model.Cuenta) Context {
	return Context{cuentas: model.IndexCuentas(cuentas)}
}

// Matcher reports whether a row matches an already normalized term.
type Matcher func(row model.Row, term string, ctx Context) bool

var matchers = map[model.TableType]Matcher{
	model.TableMovimientos: matchMovimiento,
	model.TableCajaChica:   matchMovimiento,
	model.TableCuentas:     matchCuenta,
	model.TableProductos:   matchProducto,
}

// Matches dispatches to the matcher for t. Unknown tables match nothing.
func Matches(t model.TableType, row model.Row, term string, ctx Context) bool {
	m, ok := matchers[t]
	if !ok {
		return false
	}
	return m(row, term, ctx)
}

func containsAny(term string, values ...any) bool {
	for _, v := range values {
		if strings.Contains(Normalize(v), term) {
			return true
		}
	}
	return false
}

// amount yields both the shortest and the two-decimal spelling so "100" and
// "100.00" both find a stored 100.
func amount(d model.Amount) []any {
	if !d.Valid {
		return nil
	}
	return []any{d.Decimal.String(), d.Decimal.StringFixed(2)}
}

func matchMovimiento(row model.Row, term string, ctx Context) bool {
	m, ok := row.(model.Movimiento)
	if !ok {
		return false
	}
	name, _ := ctx.cuentas.Name(m.Cuenta)
	fields := []any{m.ID, m.Fecha, m.Tipo, m.Cuenta, name, m.Concepto}
	fields = append(fields, amount(m.Total)...)
	fields = append(fields, amount(m.DescuentoTotal)...)
	return containsAny(term, fields...)
}

func matchCuenta(row model.Row, term string, _ Context) bool {
	c, ok := row.(model.Cuenta)
	if !ok {
		return false
	}
	fields := []any{c.ID, c.Nombre, c.ContactoMail, c.ContactoTelefono, c.TipoCuenta}
	fields = append(fields, amount(c.Balance())...)
	return containsAny(term, fields...)
}

func matchProducto(row model.Row, term string, _ Context) bool {
	p, ok := row.(model.Producto)
	if !ok {
		return false
	}
	fields := []any{p.ID, p.TipoProducto, p.Descripcion, p.Existencias()}
	fields = append(fields, amount(p.PrecioVentaUnitario)...)
	fields = append(fields, amount(p.CostoUnitario)...)
	return containsAny(term, fields...)
}

// FilterRows keeps the rows that pass the date gate and then the text match.
//
// Date tokens typed into searchTerm join selectedDates. Only movement views
// have a date column; other views ignore dates entirely. The input order is
// preserved.
func FilterRows(rows []model.Row, t model.TableType, searchTerm string, selectedDates []string, cuentas []model.Cuenta) []model.Row {
	textTerm := StripDateTokens(searchTerm)

	dates := make(map[string]struct{}, len(selectedDates))
	for _, d := range selectedDates {
		dates[d] = struct{}{}
	}
	for _, d := range ExtractDateTokens(searchTerm) {
		dates[d] = struct{}{}
	}

	normalized := Normalize(textTerm)
	ctx := NewContext(cuentas)

	filtered := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if !passesDates(row, t, dates) {
			continue
		}
		if textTerm == "" || Matches(t, row, normalized, ctx) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func passesDates(row model.Row, t model.TableType, dates map[string]struct{}) bool {
	if len(dates) == 0 || !t.IsMovement() {
		return true
	}
	fecha, _ := row.Field("fecha").(string)
	_, ok := dates[fecha]
	return ok
}
