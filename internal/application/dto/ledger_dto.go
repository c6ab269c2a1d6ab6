package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerQuery parámetros de GET /api/inventory-ledger.
// Fechas en formato YYYY-MM-DD (o RFC3339); ambas opcionales.
type LedgerQuery struct {
	ProductID   string `query:"product_id" validate:"required,number"`
	VariationID string `query:"variation_id" validate:"required,number"`
	LocationID  string `query:"location_id" validate:"required,number"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
}

// LedgerReportDTO kardex completo de una variación en una sucursal.
type LedgerReportDTO struct {
	Header       LedgerHeaderDTO        `json:"header"`
	Transactions []LedgerTransactionDTO `json:"transactions"`
	Summary      LedgerSummaryDTO       `json:"summary"`
}

// LedgerRefDTO referencia mínima a producto, variación o sucursal.
type LedgerRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku,omitempty"`
}

// LedgerHeaderDTO identidad del reporte, ventana resuelta y descripción del saldo base.
type LedgerHeaderDTO struct {
	ReportID            string          `json:"report_id"`
	BusinessID          string          `json:"business_id"`
	Product             LedgerRefDTO    `json:"product"`
	Variation           LedgerRefDTO    `json:"variation"`
	Location            LedgerRefDTO    `json:"location"`
	WindowStart         time.Time       `json:"window_start"`
	WindowEnd           time.Time       `json:"window_end"`
	BaselineType        string          `json:"baseline_type"` // correction | custom_range | first_transaction
	BaselineDescription string          `json:"baseline_description"`
	BaselineQuantity    decimal.Decimal `json:"baseline_quantity"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

// LedgerTransactionDTO un evento del kardex con su saldo corrido.
type LedgerTransactionDTO struct {
	Date            time.Time       `json:"date"`
	Kind            string          `json:"kind"`
	Type            string          `json:"type"` // etiqueta legible del kind
	ReferenceNo     string          `json:"reference_no"`
	Description     string          `json:"description"`
	Actor           string          `json:"actor"`
	RelatedLocation string          `json:"related_location,omitempty"`
	QuantityIn      decimal.Decimal `json:"quantity_in"`
	QuantityOut     decimal.Decimal `json:"quantity_out"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
	SourceID        int64           `json:"source_id"`
	SourceType      string          `json:"source_type"`
}

// LedgerSummaryDTO totales y resultado de la conciliación.
type LedgerSummaryDTO struct {
	TotalStockIn           decimal.Decimal `json:"total_stock_in"`
	TotalStockOut          decimal.Decimal `json:"total_stock_out"`
	NetChange              decimal.Decimal `json:"net_change"`
	StartingBalance        decimal.Decimal `json:"starting_balance"`
	CalculatedFinalBalance decimal.Decimal `json:"calculated_final_balance"`
	CurrentSystemInventory decimal.Decimal `json:"current_system_inventory"`
	Variance               decimal.Decimal `json:"variance"`
	IsReconciled           bool            `json:"is_reconciled"`
	Status                 string          `json:"status"` // Matched | Discrepancy
	TransactionCount       int             `json:"transaction_count"`
}
