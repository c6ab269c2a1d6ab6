package entity

// Location representa una sucursal o bodega de la empresa donde se mantiene inventario.
type Location struct {
	ID         int64
	BusinessID string
	Name       string
}
