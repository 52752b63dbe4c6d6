// Package workflow runs the two phase confirmation of edits and deletes:
// a change is proposed and shown, then confirmed and sent to the backend.
package workflow

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/common"
)

// Backend resources.
const (
	ResourceMovimientos      = "movimientos"
	ResourceCuentas          = "cuentas"
	ResourceProductos        = "productos"
	ResourceMovimientosItems = "movimientos-items"
)

var resourceAliases = map[string]string{
	"movimientos":       ResourceMovimientos,
	"movimiento":        ResourceMovimientos,
	"cajachica":         ResourceMovimientos,
	"cuentas":           ResourceCuentas,
	"cuenta":            ResourceCuentas,
	"productos":         ResourceProductos,
	"producto":          ResourceProductos,
	"movimiento_items":  ResourceMovimientosItems,
	"movimiento-items":  ResourceMovimientosItems,
	"movimientoitems":   ResourceMovimientosItems,
	"movimientos-items": ResourceMovimientosItems,
	"movimientos_items": ResourceMovimientosItems,
}

// ResolveResource maps a table name, or one of its synonyms, to the backend
// resource that stores it.
func ResolveResource(table string) (string, error) {
	if r, ok := resourceAliases[strings.ToLower(strings.TrimSpace(table))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: %s", common.ErrUnsupportedTable, table)
}
