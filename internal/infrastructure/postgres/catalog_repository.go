package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo resuelve productos, variaciones y sucursales de una empresa.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetProduct obtiene un producto de la empresa.
func (r *CatalogRepo) GetProduct(ctx context.Context, businessID string, productID int64) (*entity.Product, error) {
	query := `
		SELECT id, business_id, name, COALESCE(sku, '')
		FROM products WHERE id = $1 AND business_id = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, productID, businessID).Scan(&p.ID, &p.BusinessID, &p.Name, &p.SKU)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetVariation obtiene una variación que pertenezca al producto.
func (r *CatalogRepo) GetVariation(ctx context.Context, productID, variationID int64) (*entity.ProductVariation, error) {
	query := `
		SELECT id, product_id, name, COALESCE(sub_sku, '')
		FROM product_variations WHERE id = $1 AND product_id = $2`
	var v entity.ProductVariation
	err := r.q.QueryRow(ctx, query, variationID, productID).Scan(&v.ID, &v.ProductID, &v.Name, &v.SubSKU)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variation: %w", err)
	}
	return &v, nil
}

// GetLocation obtiene una sucursal de la empresa.
func (r *CatalogRepo) GetLocation(ctx context.Context, businessID string, locationID int64) (*entity.Location, error) {
	query := `
		SELECT id, business_id, name
		FROM business_locations WHERE id = $1 AND business_id = $2`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, locationID, businessID).Scan(&l.ID, &l.BusinessID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}
