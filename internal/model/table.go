// Package model defines the row types shown by the tables and the tag that
// tells them apart.
package model

import (
	"fmt"
	"strings"
)

// TableType identifies which row shape a row set carries.
type TableType string

// Table types.
const (
	TableMovimientos TableType = "movimientos"
	TableCuentas     TableType = "cuentas"
	TableProductos   TableType = "productos"
	// TableCajaChica is the petty cash view over the movements snapshot.
	TableCajaChica TableType = "cajachica"
)

// AllTables lists the views in navigation order.
var AllTables = []TableType{TableMovimientos, TableCajaChica, TableCuentas, TableProductos}

// ParseTableType converts user input into a TableType.
func ParseTableType(s string) (TableType, error) {
	switch TableType(strings.ToLower(strings.TrimSpace(s))) {
	case TableMovimientos:
		return TableMovimientos, nil
	case TableCuentas:
		return TableCuentas, nil
	case TableProductos:
		return TableProductos, nil
	case TableCajaChica:
		return TableCajaChica, nil
	}
	return "", fmt.Errorf("unknown table %q", s)
}

// Source returns the table whose snapshot backs this view.
func (t TableType) Source() TableType {
	if t == TableCajaChica {
		return TableMovimientos
	}
	return t
}

// IsMovement reports whether rows of this view are movements.
func (t TableType) IsMovement() bool {
	return t.Source() == TableMovimientos
}

// Title returns the label used in navigation.
func (t TableType) Title() string {
	switch t {
	case TableMovimientos:
		return "Movimientos"
	case TableCajaChica:
		return "Caja chica"
	case TableCuentas:
		return "Cuentas"
	case TableProductos:
		return "Productos"
	}
	return string(t)
}
