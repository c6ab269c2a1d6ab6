package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusDraft     = "draft"
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

// SaleLine es una línea de venta POS para una variación; descuenta stock al completarse.
type SaleLine struct {
	ID            int64
	SaleID        int64
	InvoiceNumber string
	Status        string
	CustomerName  string
	CashierName   string
	Quantity      decimal.Decimal // cantidad vendida
	CreatedAt     time.Time
}
