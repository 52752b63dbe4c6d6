package registry

import (
	"errors"
	"testing"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(columns []Column) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		out = append(out, c.Key)
	}
	return out
}

func TestColumnsPerTable(t *testing.T) {
	tests := []struct {
		table model.TableType
		want  []string
	}{
		{model.TableMovimientos, []string{"id", "fecha", "tipo", "cuenta", "numero_comprobante", "concepto", "descuento_total", "total"}},
		{model.TableCajaChica, []string{"id", "fecha", "tipo", "concepto", "cuenta", "debe", "haber", "saldo_diferencia"}},
		{model.TableCuentas, []string{"id", "nombre", "contacto_mail", "contacto_telefono", "tipo_cuenta", "monto"}},
		{model.TableProductos, []string{"id", "tipo_producto", "precio_venta_unitario", "costo_unitario", "cantidad"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.table), func(t *testing.T) {
			assert.Equal(t, tt.want, keys(Columns(tt.table, nil)))
		})
	}

	assert.Nil(t, Columns(model.TableType("ventas"), nil))
}

func TestCuentaFormatter(t *testing.T) {
	row := model.Movimiento{ID: 1, Cuenta: 7}

	loading, ok := Find(Columns(model.TableMovimientos, nil), "cuenta")
	require.True(t, ok)
	assert.Equal(t, LoadingPlaceholder, loading.Format(7, row))

	cols := Columns(model.TableMovimientos, []model.Cuenta{{ID: 7, Nombre: "Juan Pérez"}})
	cuenta, ok := Find(cols, "cuenta")
	require.True(t, ok)
	assert.Equal(t, "Juan Pérez", cuenta.Format(7, row))
	assert.Equal(t, "ID: 99 (no encontrada)", cuenta.Format(99, row))
	assert.Equal(t, Placeholder, cuenta.Format(nil, row))
}

func TestAmountFormatters(t *testing.T) {
	tests := []struct {
		raw    any
		name   string
		amount string
		price  string
	}{
		{name: "nil", raw: nil, amount: "-", price: "-"},
		{name: "invalid null decimal", raw: decimal.NullDecimal{}, amount: "-", price: "-"},
		{name: "zero string", raw: "0.00", amount: "-", price: "-"},
		{name: "value", raw: decimal.NewNullDecimal(decimal.RequireFromString("12.5")), amount: "12.50", price: "$12.50"},
		{name: "numeric string", raw: "3", amount: "3.00", price: "$3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.amount, formatAmount(tt.raw, nil))
			assert.Equal(t, tt.price, formatPrice(tt.raw, nil))
		})
	}
}

func TestCajaChicaDebeHaber(t *testing.T) {
	cols := Columns(model.TableCajaChica, nil)
	debe, _ := Find(cols, "debe")
	haber, _ := Find(cols, "haber")

	total := model.NewAmount(decimal.NewFromInt(40))
	cobranza := model.Movimiento{ID: 1, Tipo: model.TipoCobranza, Total: total}
	pago := model.Movimiento{ID: 2, Tipo: model.TipoPago, Total: total}

	assert.Equal(t, "$40.00", debe.Format(nil, cobranza))
	assert.Equal(t, "", haber.Format(nil, cobranza))
	assert.Equal(t, "", debe.Format(nil, pago))
	assert.Equal(t, "$40.00", haber.Format(nil, pago))
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		name  string
		value string
		table model.TableType
		want  string
	}{
		{name: "movement type", value: "factura_venta", table: model.TableMovimientos, want: "#c3dfb9"},
		{name: "unknown movement type", value: "trueque", table: model.TableMovimientos, want: NoColor},
		{name: "account type", value: "proveedor", table: model.TableCuentas, want: "#afe4ee"},
		{name: "empleado has no colour", value: "empleado", table: model.TableCuentas, want: NoColor},
		{name: "product class", value: "baja", table: model.TableProductos, want: "#f5b7b1"},
		{name: "petty cash known", value: "cobranza", table: model.TableCajaChica, want: "#7be05d"},
		{name: "petty cash without otro", value: "trueque", table: model.TableCajaChica, want: NoColor},
		{name: "unknown table", value: "pago", table: model.TableType("ventas"), want: NoColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorFor(tt.value, tt.table))
		})
	}
}

func TestRowColor(t *testing.T) {
	stock := 2
	assert.Equal(t, "#f5b7b1", RowColor(model.TableProductos, model.Producto{ID: 1, Cantidad: &stock}))
	assert.Equal(t, "#ed9797", RowColor(model.TableMovimientos, model.Movimiento{ID: 1, Tipo: model.TipoPago}))
	assert.Equal(t, "#9eaff5", RowColor(model.TableCuentas, model.Cuenta{ID: 1, TipoCuenta: model.TipoCuentaCliente}))
}

func TestIsEditable(t *testing.T) {
	for _, key := range []string{"fecha", "concepto", "total", "descuento_total", "nombre", "monto", "cantidad"} {
		assert.True(t, IsEditable(key), key)
	}
	for _, key := range []string{"id", "tipo", "cuenta", "tipo_cuenta", "debe"} {
		assert.False(t, IsEditable(key), key)
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		draft   string
		wantErr string
	}{
		{name: "valid date", field: "fecha", draft: "2024-02-29"},
		{name: "bad date", field: "fecha", draft: "29/02/2024", wantErr: "fecha: datetime"},
		{name: "empty total", field: "total", draft: " ", wantErr: "total: required"},
		{name: "non numeric total", field: "total", draft: "doce", wantErr: "total: numeric"},
		{name: "negative total", field: "total", draft: "-4", wantErr: "total: gte"},
		{name: "discount over 100", field: "descuento_total", draft: "120", wantErr: "descuento_total: lte"},
		{name: "empty discount", field: "descuento_total", draft: ""},
		{name: "fractional stock", field: "cantidad", draft: "1.5", wantErr: "cantidad: number"},
		{name: "bad mail", field: "contacto_mail", draft: "juan@", wantErr: "contacto_mail: email"},
		{name: "empty mail", field: "contacto_mail", draft: ""},
		{name: "not editable", field: "id", draft: "3", wantErr: "id: not editable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDraft(tt.field, tt.draft)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCoerce(t *testing.T) {
	v, err := Coerce("total", "12.50")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(v.(decimal.Decimal)))

	v, err = Coerce("cantidad", "7")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = Coerce("descuento_total", "")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Coerce("concepto", " alquiler ")
	require.NoError(t, err)
	assert.Equal(t, "alquiler", v)

	_, err = Coerce("tipo", "pago")
	assert.ErrorIs(t, err, common.ErrValidation)
}
