package registry

import "github.com/Veraticus/the-books-must-balance/internal/model"

// NoColor is returned for values without a colour.
const NoColor = ""

var movimientosColors = map[string]string{
	"factura_venta":  "#c3dfb9",
	"factura_compra": "#a3c2f5",
	"pago":           "#ed9797",
	"cobranza":       "#7be05d",
	"jornal":         "#b0f57e",
	"alquiler":       "#62c86f",
	"impuestos":      "#98da3b",
	"sueldo":         "#b4e89c",
	"aguinaldo":      "#6fc15d",
	"cajachica":      "#f7e6b7",
}

var cajaChicaColors = map[string]string{
	"pago":      "#ed9797",
	"cobranza":  "#7be05d",
	"jornal":    "#ed9797",
	"alquiler":  "#ed9797",
	"impuestos": "#ed9797",
	"sueldo":    "#ed9797",
	"aguinaldo": "#ed9797",
}

var cuentasColors = map[string]string{
	"proveedor": "#afe4ee",
	"cliente":   "#9eaff5",
}

var productosColors = map[string]string{
	"baja":      "#f5b7b1",
	"normal":    "#d5f5e3",
	"destacado": "#fcf3cf",
}

var colorMaps = map[model.TableType]map[string]string{
	model.TableMovimientos: movimientosColors,
	model.TableCajaChica:   cajaChicaColors,
	model.TableCuentas:     cuentasColors,
	model.TableProductos:   productosColors,
}

// ColorFor returns the colour for a classification value in a table, or
// NoColor. Petty cash falls back to its "otro" entry before giving up.
func ColorFor(value string, t model.TableType) string {
	colors := colorMaps[t]
	if c, ok := colors[value]; ok {
		return c
	}
	if t == model.TableCajaChica {
		if c, ok := colors["otro"]; ok {
			return c
		}
	}
	return NoColor
}

// classKeys names the field that classifies rows of each table.
var classKeys = map[model.TableType]string{
	model.TableMovimientos: "tipo",
	model.TableCajaChica:   "tipo",
	model.TableCuentas:     "tipo_cuenta",
	model.TableProductos:   "clasificacion",
}

// RowColor returns the colour of a row from its classification field.
func RowColor(t model.TableType, row model.Row) string {
	key, ok := classKeys[t]
	if !ok {
		return NoColor
	}
	value, _ := row.Field(key).(string)
	return ColorFor(value, t)
}
