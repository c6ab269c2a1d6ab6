package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado común de devoluciones (a proveedor y de cliente).
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

// PurchaseReturnLine es una devolución de mercancía al proveedor (sale stock).
type PurchaseReturnLine struct {
	ID           int64
	ReturnID     int64
	ReturnNumber string
	Status       string
	SupplierName string
	ProcessedBy  string
	Reason       string
	Quantity     decimal.Decimal
	ApprovedAt   time.Time
}

// CustomerReturnLine es una devolución de un cliente (entra stock).
type CustomerReturnLine struct {
	ID           int64
	ReturnID     int64
	ReturnNumber string
	Status       string
	CustomerName string
	ProcessedBy  string
	Reason       string
	Quantity     decimal.Decimal
	ApprovedAt   time.Time
}
