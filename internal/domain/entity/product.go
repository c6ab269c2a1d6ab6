package entity

// Product representa un producto del catálogo de una empresa (multi-tenant por BusinessID).
type Product struct {
	ID         int64
	BusinessID string
	Name       string
	SKU        string
}

// ProductVariation es la unidad de stock (talla, color, presentación) de un producto.
// El kardex se calcula siempre a nivel de variación + sucursal.
type ProductVariation struct {
	ID        int64
	ProductID int64
	Name      string
	SubSKU    string
}
