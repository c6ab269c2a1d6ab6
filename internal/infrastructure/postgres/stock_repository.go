package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo lectura del stock registrado por variación y sucursal (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock; si no existe devuelve cantidad cero.
func (r *StockRepo) Get(ctx context.Context, variationID, locationID int64) (*entity.VariationLocationStock, error) {
	query := `
		SELECT variation_id, location_id, qty_available, updated_at
		FROM variation_location_details WHERE variation_id = $1 AND location_id = $2`
	var s entity.VariationLocationStock
	err := r.q.QueryRow(ctx, query, variationID, locationID).Scan(
		&s.VariationID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.VariationLocationStock{VariationID: variationID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetCurrentStock cantidad registrada contra la que se concilia el kardex.
func (r *StockRepo) GetCurrentStock(ctx context.Context, variationID, locationID int64) (decimal.Decimal, error) {
	s, err := r.Get(ctx, variationID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Quantity, nil
}
