package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariationLocationStock es el stock actual registrado de una variación en una sucursal
// (tabla materializada mantenida por los flujos de compra, venta y traslado).
type VariationLocationStock struct {
	VariationID int64
	LocationID  int64
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
