package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is implemented by every row shape. Field returns the raw value stored
// under a column key, or nil when the row has no value for it.
type Row interface {
	RowID() int
	Field(key string) any
}

// Invoice movement types carry a line item list.
const (
	TipoFacturaVenta  = "factura_venta"
	TipoFacturaCompra = "factura_compra"
	TipoCobranza      = "cobranza"
	TipoPago          = "pago"
)

// IsInvoiceType reports whether a movement type is a sales or purchase invoice.
func IsInvoiceType(tipo string) bool {
	return tipo == TipoFacturaVenta || tipo == TipoFacturaCompra
}

// IsZeroEquivalent reports whether a raw value means "no amount": nil,
// an absent amount, a zero number, or a string that parses to zero.
func IsZeroEquivalent(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case decimal.Decimal:
		return val.IsZero()
	case decimal.NullDecimal:
		return !val.Valid || val.Decimal.IsZero()
	case Amount:
		return !val.Valid || val.Decimal.IsZero()
	case *decimal.Decimal:
		return val == nil || val.IsZero()
	case int:
		return val == 0
	case *int:
		return val == nil || *val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return true
		}
		d, err := decimal.NewFromString(s)
		return err == nil && d.IsZero()
	}
	return false
}

// IsNullish reports whether a raw value is absent, including the literal
// "NULL" some backends emit.
func IsNullish(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case decimal.NullDecimal:
		return !val.Valid
	case Amount:
		return !val.Valid
	case *int:
		return val == nil
	case *decimal.Decimal:
		return val == nil
	case string:
		return strings.EqualFold(strings.TrimSpace(val), "null")
	}
	return false
}

// Stringify renders a raw value the way it is shown when no formatter applies.
// Nil and null values render as the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case *int:
		if val == nil {
			return ""
		}
		return strconv.Itoa(*val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case decimal.Decimal:
		return val.String()
	case *decimal.Decimal:
		if val == nil {
			return ""
		}
		return val.String()
	case decimal.NullDecimal:
		if !val.Valid {
			return ""
		}
		return val.Decimal.String()
	case Amount:
		return Stringify(val.NullDecimal)
	case []Item:
		names := make([]string, 0, len(val))
		for _, it := range val {
			names = append(names, it.NombreProducto)
		}
		return strings.Join(names, ", ")
	case interface{ String() string }:
		return val.String()
	}
	return ""
}

// ToDecimal converts a raw value into a decimal. ok is false for nullish or
// unparseable values.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case *decimal.Decimal:
		if val == nil {
			return decimal.Decimal{}, false
		}
		return *val, true
	case decimal.NullDecimal:
		return val.Decimal, val.Valid
	case Amount:
		return val.Decimal, val.Valid
	case int:
		return decimal.NewFromInt(int64(val)), true
	case *int:
		if val == nil {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromInt(int64(*val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case float64:
		return decimal.NewFromFloat(val), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// SortByID returns a copy of rows ordered by ascending id. Rows sharing an id
// keep their relative order.
func SortByID(rows []Row) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RowID() < sorted[j].RowID()
	})
	return sorted
}
