package model

// Account types.
const (
	TipoCuentaProveedor = "proveedor"
	TipoCuentaCliente   = "cliente"
	TipoCuentaEmpleado  = "empleado"
)

// Cuenta is a client, supplier or employee ledger with a running balance.
// Older backends send the balance as saldo instead of monto.
type Cuenta struct {
	Monto            Amount `json:"monto"`
	Saldo            Amount `json:"saldo"`
	Nombre           string `json:"nombre"`
	ContactoMail     string `json:"contacto_mail"`
	ContactoTelefono string `json:"contacto_telefono"`
	TipoCuenta       string `json:"tipo_cuenta"`
	ID               int    `json:"id"`
}

// RowID implements Row.
func (c Cuenta) RowID() int { return c.ID }

// Balance returns monto, falling back to saldo.
func (c Cuenta) Balance() Amount {
	if c.Monto.Valid {
		return c.Monto
	}
	return c.Saldo
}

// Field implements Row.
func (c Cuenta) Field(key string) any {
	switch key {
	case "id":
		return c.ID
	case "nombre":
		return c.Nombre
	case "contacto_mail":
		return c.ContactoMail
	case "contacto_telefono":
		return c.ContactoTelefono
	case "tipo_cuenta", "tipo":
		return c.TipoCuenta
	case "monto", "saldo":
		return c.Balance()
	}
	return nil
}

// CuentaIndex maps account ids to accounts.
type CuentaIndex map[int]Cuenta

// IndexCuentas builds a lookup table for account ids.
func IndexCuentas(cuentas []Cuenta) CuentaIndex {
	idx := make(CuentaIndex, len(cuentas))
	for _, c := range cuentas {
		idx[c.ID] = c
	}
	return idx
}

// Name returns the account name for id, or false when the id is dangling.
func (idx CuentaIndex) Name(id int) (string, bool) {
	c, ok := idx[id]
	if !ok {
		return "", false
	}
	return c.Nombre, true
}
