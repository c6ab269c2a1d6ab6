package inventory

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var tracer = otel.Tracer("github.com/jhoicas/inventory-ledger/internal/application/inventory")

// CollectOptions ajusta la fuente de correcciones dentro de una recolección.
type CollectOptions struct {
	// CorrectionsFromExclusive exige approved_at > From (excluye la corrección ancla).
	CorrectionsFromExclusive bool
	// ExcludeCorrectionID descarta explícitamente la corrección usada como saldo base (0 = ninguna).
	ExcludeCorrectionID int64
}

// EventCollector reúne los eventos de stock de las ocho fuentes para una llave y una ventana.
// Las consultas son independientes y se lanzan en paralelo; el resultado concatena las
// fuentes en orden fijo (recepciones, ventas, traslados out/in, correcciones, devoluciones,
// historial) para que el ordenamiento estable posterior sea determinista.
type EventCollector struct {
	sources repository.LedgerSourceRepository
}

// NewEventCollector construye el recolector.
func NewEventCollector(sources repository.LedgerSourceRepository) *EventCollector {
	return &EventCollector{sources: sources}
}

type sourceFetch struct {
	name string
	run  func(ctx context.Context) ([]ledger.StockEvent, error)
}

// Collect devuelve la unión (sin ordenar) de eventos dentro de w. Falla completo si
// cualquiera de las fuentes falla; no hay resultados parciales.
func (c *EventCollector) Collect(
	ctx context.Context,
	key entity.LedgerKey,
	w entity.Window,
	opts CollectOptions,
) ([]ledger.StockEvent, error) {
	ctx, span := tracer.Start(ctx, "ledger.collect")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("ledger.variation_id", key.VariationID),
		attribute.Int64("ledger.location_id", key.LocationID),
		attribute.String("ledger.window_from", w.From.String()),
		attribute.String("ledger.window_to", w.To.String()),
	)

	cw := w
	cw.FromExclusive = w.FromExclusive || opts.CorrectionsFromExclusive

	fetches := []sourceFetch{
		{"purchase_receipts", fetch(c.sources.PurchaseReceipts, key, w, ledger.FromPurchaseReceipt, receiptCounts)},
		{"sales", fetch(c.sources.Sales, key, w, ledger.FromSale, saleCounts)},
		{"transfers_out", fetch(c.sources.TransfersOut, key, w, ledger.FromTransferOut, transferOutCounts(key))},
		{"transfers_in", fetch(c.sources.TransfersIn, key, w, ledger.FromTransferIn, transferInCounts(key))},
		{"inventory_corrections", fetch(c.sources.InventoryCorrections, key, cw, ledger.FromCorrection,
			func(r entity.InventoryCorrection) bool {
				return r.Status == entity.CorrectionStatusApproved &&
					(opts.ExcludeCorrectionID == 0 || r.ID != opts.ExcludeCorrectionID)
			})},
		{"purchase_returns", fetch(c.sources.PurchaseReturns, key, w, ledger.FromPurchaseReturn,
			func(r entity.PurchaseReturnLine) bool { return r.Status == entity.ReturnStatusApproved })},
		{"customer_returns", fetch(c.sources.CustomerReturns, key, w, ledger.FromCustomerReturn,
			func(r entity.CustomerReturnLine) bool { return r.Status == entity.ReturnStatusApproved })},
		{"stock_history", fetch(c.sources.StockHistory, key, w, ledger.FromHistoryEntry,
			func(r entity.StockHistoryEntry) bool {
				return !entity.IsDedicatedHistoryType(r.TransactionType)
			})},
	}

	buckets := make([][]ledger.StockEvent, len(fetches))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetches {
		g.Go(func() error {
			sctx, sspan := tracer.Start(gctx, "ledger.source."+f.name)
			defer sspan.End()
			evs, err := f.run(sctx)
			if err != nil {
				sspan.RecordError(err)
				sspan.SetStatus(codes.Error, err.Error())
				return fmt.Errorf("fuente %s: %w", f.name, err)
			}
			sspan.SetAttributes(attribute.Int("ledger.events", len(evs)))
			buckets[i] = evs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	events := make([]ledger.StockEvent, 0, total)
	for _, b := range buckets {
		events = append(events, b...)
	}
	span.SetAttributes(attribute.Int("ledger.events", total))
	return events, nil
}

// fetch adapta una consulta de fuente a eventos uniformes. Los eventos cuya fecha efectiva
// cae fuera de la ventana se descartan, igual que las filas que no pasan keep.
func fetch[T any](
	query func(context.Context, entity.LedgerKey, entity.Window) ([]T, error),
	key entity.LedgerKey,
	w entity.Window,
	adapt func(T) ledger.StockEvent,
	keep func(T) bool,
) func(context.Context) ([]ledger.StockEvent, error) {
	return func(ctx context.Context) ([]ledger.StockEvent, error) {
		rows, err := query(ctx, key, w)
		if err != nil {
			return nil, err
		}
		evs := make([]ledger.StockEvent, 0, len(rows))
		for _, r := range rows {
			if keep != nil && !keep(r) {
				continue
			}
			ev := adapt(r)
			if !w.Contains(ev.Timestamp) {
				continue
			}
			evs = append(evs, ev)
		}
		return evs, nil
	}
}

// Reglas de inclusión por fuente. El repositorio ya filtra en SQL; se repiten aquí para
// que el kardex no dependa de que cada implementación del puerto las respete.

func receiptCounts(r entity.PurchaseReceiptLine) bool { return r.Status == entity.GRNStatusApproved }

func saleCounts(r entity.SaleLine) bool { return r.Status == entity.SaleStatusCompleted }

// transferOutCounts: sólo traslados despachados desde la sucursal con stock ya descontado.
func transferOutCounts(key entity.LedgerKey) func(entity.TransferLine) bool {
	return func(t entity.TransferLine) bool {
		if t.FromLocationID != key.LocationID || !t.StockDeducted {
			return false
		}
		switch t.Status {
		case entity.TransferStatusInTransit, entity.TransferStatusReceived, entity.TransferStatusCompleted:
			return true
		}
		return false
	}
}

// transferInCounts: sólo traslados recibidos en la sucursal.
func transferInCounts(key entity.LedgerKey) func(entity.TransferLine) bool {
	return func(t entity.TransferLine) bool {
		if t.ToLocationID != key.LocationID {
			return false
		}
		return t.Status == entity.TransferStatusReceived || t.Status == entity.TransferStatusCompleted
	}
}
