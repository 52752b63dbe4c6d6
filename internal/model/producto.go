package model

// Product classifications used for row colouring.
const (
	ClasificacionBaja      = "baja"
	ClasificacionNormal    = "normal"
	ClasificacionDestacado = "destacado"
)

// LowStockThreshold is the stock at or below which a product is classified baja.
const LowStockThreshold = 5

// Producto is an inventory item. Stock arrives as cantidad from the current
// backend and as stock from older ones.
type Producto struct {
	PrecioVentaUnitario Amount `json:"precio_venta_unitario"`
	CostoUnitario       Amount `json:"costo_unitario"`
	Cantidad            *int   `json:"cantidad"`
	Stock               *int   `json:"stock"`
	TipoProducto        string `json:"tipo_producto"`
	Descripcion         string `json:"descripcion"`
	Clasificacion       string `json:"clasificacion,omitempty"`
	ID                  int    `json:"id"`
}

// RowID implements Row.
func (p Producto) RowID() int { return p.ID }

// Existencias returns the stock count, preferring cantidad.
func (p Producto) Existencias() *int {
	if p.Cantidad != nil {
		return p.Cantidad
	}
	return p.Stock
}

// Nombre returns tipo_producto, falling back to descripcion.
func (p Producto) Nombre() string {
	if p.TipoProducto != "" {
		return p.TipoProducto
	}
	return p.Descripcion
}

// Class returns the product classification, deriving it from stock when the
// backend does not send one.
func (p Producto) Class() string {
	if p.Clasificacion != "" {
		return p.Clasificacion
	}
	if s := p.Existencias(); s != nil && *s <= LowStockThreshold {
		return ClasificacionBaja
	}
	return ClasificacionNormal
}

// Field implements Row.
func (p Producto) Field(key string) any {
	switch key {
	case "id":
		return p.ID
	case "tipo_producto":
		return p.Nombre()
	case "descripcion":
		return p.Descripcion
	case "precio_venta_unitario", "precio":
		return p.PrecioVentaUnitario
	case "costo_unitario":
		return p.CostoUnitario
	case "cantidad", "stock":
		return p.Existencias()
	case "clasificacion":
		return p.Class()
	}
	return nil
}
