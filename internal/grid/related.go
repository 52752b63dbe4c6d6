package grid

import "github.com/Veraticus/the-books-must-balance/internal/model"

// RelatedAccount returns the account a row points at when "view related
// movements" is offered for the column key: the account itself on the
// accounts name column, or the movement's account on a movement account column.
func RelatedAccount(t model.TableType, row model.Row, key string) (int, bool) {
	switch {
	case t == model.TableCuentas && key == "nombre":
		return row.RowID(), true
	case t.IsMovement() && key == "cuenta":
		id, ok := row.Field("cuenta").(int)
		return id, ok
	}
	return 0, false
}

// RelatedRows returns the movements booked against the account behind row.
// A nil or empty movement list yields an empty result.
func RelatedRows(t model.TableType, row model.Row, key string, movements []model.Movimiento) []model.Row {
	cuentaID, ok := RelatedAccount(t, row, key)
	if !ok {
		return []model.Row{}
	}
	return MovementsForCuenta(cuentaID, movements)
}

// MovementsForCuenta filters movements by account id.
func MovementsForCuenta(cuentaID int, movements []model.Movimiento) []model.Row {
	related := make([]model.Row, 0)
	for _, m := range movements {
		if m.Cuenta == cuentaID {
			related = append(related, m)
		}
	}
	return related
}
