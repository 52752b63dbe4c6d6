package model

// Snapshot holds the latest full fetch of every table.
type Snapshot struct {
	Movimientos []Movimiento
	Cuentas     []Cuenta
	Productos   []Producto
}

// Rows returns the rows backing a view. The petty cash view excludes invoice
// movements.
func (s Snapshot) Rows(t TableType) []Row {
	switch t {
	case TableMovimientos:
		return MovimientoRows(s.Movimientos)
	case TableCajaChica:
		rows := make([]Row, 0, len(s.Movimientos))
		for _, m := range s.Movimientos {
			if !m.IsInvoice() {
				rows = append(rows, m)
			}
		}
		return rows
	case TableCuentas:
		rows := make([]Row, 0, len(s.Cuentas))
		for _, c := range s.Cuentas {
			rows = append(rows, c)
		}
		return rows
	case TableProductos:
		rows := make([]Row, 0, len(s.Productos))
		for _, p := range s.Productos {
			rows = append(rows, p)
		}
		return rows
	}
	return nil
}

// MovimientoRows converts movements into rows.
func MovimientoRows(movs []Movimiento) []Row {
	rows := make([]Row, 0, len(movs))
	for _, m := range movs {
		rows = append(rows, m)
	}
	return rows
}
