package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockRepository define el puerto de lectura del stock registrado por variación+sucursal.
// Es la cifra contra la que se concilia el kardex.
type StockRepository interface {
	// GetCurrentStock devuelve cero si no existe fila para la posición.
	GetCurrentStock(ctx context.Context, variationID, locationID int64) (decimal.Decimal, error)
}
