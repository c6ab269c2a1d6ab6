package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// CatalogRepository resuelve producto, variación y sucursal dentro de una empresa.
// Cada método devuelve (nil, nil) si el registro no existe o pertenece a otra empresa.
type CatalogRepository interface {
	GetProduct(ctx context.Context, businessID string, productID int64) (*entity.Product, error)
	GetVariation(ctx context.Context, productID, variationID int64) (*entity.ProductVariation, error)
	GetLocation(ctx context.Context, businessID string, locationID int64) (*entity.Location, error)
}
