package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción de mercancía (GRN).
const (
	GRNStatusPending  = "pending"
	GRNStatusApproved = "approved"
	GRNStatusRejected = "rejected"
)

// PurchaseReceiptLine es una línea de una recepción de mercancía (GRN) para una variación.
// Solo las recepciones aprobadas mueven stock; la fecha efectiva es la de aprobación.
type PurchaseReceiptLine struct {
	ID           int64
	GRNID        int64
	GRNNumber    string
	Status       string
	SupplierName string
	ReceivedBy   string
	Quantity     decimal.Decimal // cantidad recibida
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}

// EffectiveAt devuelve la fecha de aprobación o, si no existe, la de creación.
func (l PurchaseReceiptLine) EffectiveAt() time.Time {
	if l.ApprovedAt != nil {
		return *l.ApprovedAt
	}
	return l.CreatedAt
}
