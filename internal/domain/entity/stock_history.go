package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del historial de producto (product_history).
const (
	HistoryTypePurchase       = "purchase"
	HistoryTypeSale           = "sale"
	HistoryTypeTransferOut    = "transfer_out"
	HistoryTypeTransferIn     = "transfer_in"
	HistoryTypeCorrection     = "inventory_correction"
	HistoryTypePurchaseReturn = "purchase_return"
	HistoryTypeCustomerReturn = "customer_return"
	HistoryTypeOpeningStock   = "opening_stock"
	HistoryTypeManualAdjust   = "manual_adjustment"
)

// DedicatedHistoryTypes son los tipos que ya tienen una fuente propia en el kardex.
// El historial general los excluye para no contarlos dos veces.
var DedicatedHistoryTypes = []string{
	HistoryTypePurchase,
	HistoryTypeSale,
	HistoryTypeTransferOut,
	HistoryTypeTransferIn,
	HistoryTypeCorrection,
	HistoryTypePurchaseReturn,
	HistoryTypeCustomerReturn,
}

// IsDedicatedHistoryType informa si el tipo está cubierto por una fuente dedicada.
func IsDedicatedHistoryType(t string) bool {
	for _, d := range DedicatedHistoryTypes {
		if d == t {
			return true
		}
	}
	return false
}

// StockHistoryEntry es un registro del historial general de movimientos de una variación.
// QuantityChange lleva signo (positivo entra, negativo sale).
type StockHistoryEntry struct {
	ID              int64
	TransactionType string
	ReferenceType   string
	ReferenceID     string
	Reason          string
	CreatedBy       string
	QuantityChange  decimal.Decimal
	TransactionDate time.Time
}
