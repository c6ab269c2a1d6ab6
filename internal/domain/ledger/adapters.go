package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

const systemActor = "System"

// FromPurchaseReceipt: entrada por la cantidad recibida, a la fecha de aprobación del GRN.
func FromPurchaseReceipt(l entity.PurchaseReceiptLine) StockEvent {
	desc := "GRN " + l.GRNNumber
	if l.SupplierName != "" {
		desc += " from " + l.SupplierName
	}
	return StockEvent{
		Timestamp:       l.EffectiveAt(),
		Kind:            KindStockReceived,
		QuantityIn:      l.Quantity.Abs(),
		QuantityOut:     decimal.Zero,
		ReferenceNumber: l.GRNNumber,
		Description:     desc,
		Actor:           actorOr(l.ReceivedBy),
		SourceID:        l.GRNID,
		SourceType:      SourceGRN,
	}
}

// FromSale: salida por la cantidad vendida, a la fecha de creación de la venta.
func FromSale(l entity.SaleLine) StockEvent {
	desc := "Sale " + l.InvoiceNumber
	if l.CustomerName != "" {
		desc += " to " + l.CustomerName
	}
	return StockEvent{
		Timestamp:       l.CreatedAt,
		Kind:            KindStockSold,
		QuantityIn:      decimal.Zero,
		QuantityOut:     l.Quantity.Abs(),
		ReferenceNumber: l.InvoiceNumber,
		Description:     desc,
		Actor:           actorOr(l.CashierName),
		SourceID:        l.SaleID,
		SourceType:      SourceSale,
	}
}

// FromTransferOut: salida de la sucursal origen en el instante de envío (no de cierre).
func FromTransferOut(l entity.TransferLine) StockEvent {
	return StockEvent{
		Timestamp:       l.DispatchedAt(),
		Kind:            KindTransferOut,
		QuantityIn:      decimal.Zero,
		QuantityOut:     l.Quantity.Abs(),
		ReferenceNumber: l.TransferNumber,
		Description:     "Transfer to " + l.ToLocationName,
		Actor:           actorOr(l.SentBy),
		RelatedLocation: l.ToLocationName,
		SourceID:        l.TransferID,
		SourceType:      SourceTransfer,
	}
}

// FromTransferIn: entrada a la sucursal destino en el instante de recepción (no de cierre).
func FromTransferIn(l entity.TransferLine) StockEvent {
	return StockEvent{
		Timestamp:       l.ArrivedAt(),
		Kind:            KindTransferIn,
		QuantityIn:      l.Quantity.Abs(),
		QuantityOut:     decimal.Zero,
		ReferenceNumber: l.TransferNumber,
		Description:     "Transfer from " + l.FromLocationName,
		Actor:           actorOr(l.ReceivedBy),
		RelatedLocation: l.FromLocationName,
		SourceID:        l.TransferID,
		SourceType:      SourceTransfer,
	}
}

// FromCorrection: la diferencia con signo se reparte en entrada (positiva) o salida (negativa).
func FromCorrection(c entity.InventoryCorrection) StockEvent {
	in, out := splitSigned(c.Difference)
	desc := fmt.Sprintf("Inventory correction (%s)", signed(c.Difference))
	if c.Reason != "" {
		desc = "Correction: " + c.Reason
	}
	return StockEvent{
		Timestamp:       c.EffectiveAt(),
		Kind:            KindInventoryCorrection,
		QuantityIn:      in,
		QuantityOut:     out,
		ReferenceNumber: fmt.Sprintf("CORR-%d", c.ID),
		Description:     desc,
		Actor:           actorOr(c.ApprovedBy),
		SourceID:        c.ID,
		SourceType:      SourceCorrection,
	}
}

// FromPurchaseReturn: salida por lo devuelto al proveedor, a la fecha de aprobación.
func FromPurchaseReturn(l entity.PurchaseReturnLine) StockEvent {
	desc := "Return to supplier " + l.SupplierName
	if l.Reason != "" {
		desc += ": " + l.Reason
	}
	return StockEvent{
		Timestamp:       l.ApprovedAt,
		Kind:            KindPurchaseReturn,
		QuantityIn:      decimal.Zero,
		QuantityOut:     l.Quantity.Abs(),
		ReferenceNumber: l.ReturnNumber,
		Description:     desc,
		Actor:           actorOr(l.ProcessedBy),
		SourceID:        l.ReturnID,
		SourceType:      SourcePurchaseReturn,
	}
}

// FromCustomerReturn: entrada por lo devuelto por el cliente, a la fecha de aprobación.
func FromCustomerReturn(l entity.CustomerReturnLine) StockEvent {
	desc := "Return from customer " + l.CustomerName
	if l.Reason != "" {
		desc += ": " + l.Reason
	}
	return StockEvent{
		Timestamp:       l.ApprovedAt,
		Kind:            KindSalesReturn,
		QuantityIn:      l.Quantity.Abs(),
		QuantityOut:     decimal.Zero,
		ReferenceNumber: l.ReturnNumber,
		Description:     desc,
		Actor:           actorOr(l.ProcessedBy),
		SourceID:        l.ReturnID,
		SourceType:      SourceCustomerReturn,
	}
}

// FromHistoryEntry: movimientos misceláneos (stock inicial, ajustes manuales) del historial general.
func FromHistoryEntry(h entity.StockHistoryEntry) StockEvent {
	in, out := splitSigned(h.QuantityChange)
	desc := h.Reason
	if desc == "" {
		desc = h.TransactionType
	}
	ref := h.ReferenceID
	if ref == "" {
		ref = fmt.Sprintf("HIST-%d", h.ID)
	}
	return StockEvent{
		Timestamp:       h.TransactionDate,
		Kind:            KindOther,
		QuantityIn:      in,
		QuantityOut:     out,
		ReferenceNumber: ref,
		Description:     desc,
		Actor:           actorOr(h.CreatedBy),
		SourceID:        h.ID,
		SourceType:      SourceHistory,
	}
}

func splitSigned(d decimal.Decimal) (in, out decimal.Decimal) {
	if d.IsNegative() {
		return decimal.Zero, d.Neg()
	}
	return d, decimal.Zero
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.String()
	}
	return "+" + d.String()
}

func actorOr(name string) string {
	if name == "" {
		return systemActor
	}
	return name
}
