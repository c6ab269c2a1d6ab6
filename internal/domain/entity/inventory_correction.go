package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una corrección (conteo físico) de inventario.
const (
	CorrectionStatusPending  = "pending"
	CorrectionStatusApproved = "approved"
	CorrectionStatusRejected = "rejected"
)

// InventoryCorrection registra un conteo físico aprobado para una variación en una sucursal.
// Difference = PhysicalCount - SystemCount (con signo).
type InventoryCorrection struct {
	ID            int64
	BusinessID    string
	ProductID     int64
	VariationID   int64
	LocationID    int64
	SystemCount   decimal.Decimal
	PhysicalCount decimal.Decimal
	Difference    decimal.Decimal
	Reason        string
	Status        string
	ApprovedBy    string
	CreatedAt     time.Time
	ApprovedAt    *time.Time
}

// EffectiveAt devuelve la fecha de aprobación o, si no existe, la de creación.
func (c InventoryCorrection) EffectiveAt() time.Time {
	if c.ApprovedAt != nil {
		return *c.ApprovedAt
	}
	return c.CreatedAt
}
