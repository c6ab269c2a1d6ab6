// Package ledger contiene la lógica pura del kardex de inventario: normalización de las
// fuentes heterogéneas a un único tipo de evento, el pliegue cronológico con saldo corrido
// y la conciliación contra el stock registrado. No depende de infraestructura.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind clasifica un evento de stock según su origen.
type Kind string

const (
	KindStockReceived       Kind = "stock_received"
	KindStockSold           Kind = "stock_sold"
	KindTransferOut         Kind = "transfer_out"
	KindTransferIn          Kind = "transfer_in"
	KindInventoryCorrection Kind = "inventory_correction"
	KindPurchaseReturn      Kind = "purchase_return"
	KindSalesReturn         Kind = "sales_return"
	KindOther               Kind = "other"
)

var kindLabels = map[Kind]string{
	KindStockReceived:       "Stock Received",
	KindStockSold:           "Stock Sold",
	KindTransferOut:         "Transfer Out",
	KindTransferIn:          "Transfer In",
	KindInventoryCorrection: "Inventory Correction",
	KindPurchaseReturn:      "Purchase Return",
	KindSalesReturn:         "Sales Return",
	KindOther:               "Other",
}

// Label devuelve el nombre legible del tipo de evento.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return kindLabels[KindOther]
}

// Tipos de documento origen (trazabilidad del evento hacia su fila fuente).
const (
	SourceGRN            = "grn"
	SourceSale           = "sale"
	SourceTransfer       = "stock_transfer"
	SourceCorrection     = "inventory_correction"
	SourcePurchaseReturn = "supplier_return"
	SourceCustomerReturn = "customer_return"
	SourceHistory        = "product_history"
)

// StockEvent es la forma uniforme de cualquier movimiento que afecta el stock de una posición.
// QuantityIn y QuantityOut son magnitudes no negativas; normalmente solo una es distinta de cero.
type StockEvent struct {
	Timestamp       time.Time
	Kind            Kind
	QuantityIn      decimal.Decimal
	QuantityOut     decimal.Decimal
	ReferenceNumber string
	Description     string
	Actor           string
	RelatedLocation string
	SourceID        int64
	SourceType      string
}

// Delta devuelve el efecto neto con signo del evento sobre el stock.
func (e StockEvent) Delta() decimal.Decimal {
	return e.QuantityIn.Sub(e.QuantityOut)
}
