package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Tipos de saldo base.
const (
	BaselineCorrection       = "correction"
	BaselineCustomRange      = "custom_range"
	BaselineFirstTransaction = "first_transaction"
)

const dateLayout = "2006-01-02"

// Epoch instante cero usado cuando el kardex arranca desde la primera transacción.
var Epoch = time.Unix(0, 0).UTC()

// Baseline saldo inicial del kardex y ventana de conteo.
type Baseline struct {
	WindowStart        time.Time
	WindowEnd          time.Time
	Quantity           decimal.Decimal
	Description        string
	Type               string
	AnchorCorrectionID int64 // 0 si el saldo no se ancla en una corrección
	ReplayedCount      int   // eventos previos plegados (solo rango personalizado)
}

// BaselineResolver determina desde qué cantidad e instante se cuenta el kardex.
type BaselineResolver struct {
	sources   repository.LedgerSourceRepository
	collector *EventCollector
}

// NewBaselineResolver construye el resolver. El recolector se reutiliza para reconstruir
// el saldo previo a una fecha de inicio personalizada.
func NewBaselineResolver(sources repository.LedgerSourceRepository, collector *EventCollector) *BaselineResolver {
	return &BaselineResolver{sources: sources, collector: collector}
}

// WindowEnd fin de la ventana: fin del día de end (23:59:59.999) o now si end es nil.
func WindowEnd(end *time.Time, now time.Time) time.Time {
	if end == nil {
		return now
	}
	return endOfDay(*end)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Resolve calcula ventana y saldo base.
//
// Sin start: se ancla en la última corrección aprobada (su conteo físico, a su fecha de
// aprobación) o, si no existe, en cero desde Epoch.
//
// Con start: la ventana inicia en start tal cual. El saldo se reconstruye desde la última
// corrección aprobada estrictamente antes de start (o desde cero) plegando todos los
// eventos previos a start con el mismo recolector y el mismo pliegue del reporte.
func (r *BaselineResolver) Resolve(
	ctx context.Context,
	key entity.LedgerKey,
	start, end *time.Time,
	now time.Time,
) (Baseline, error) {
	windowEnd := WindowEnd(end, now)
	if start != nil {
		return r.resolveCustomRange(ctx, key, *start, windowEnd)
	}

	// Con fecha fin explícita no se ancla en correcciones posteriores a la ventana.
	var before *time.Time
	if end != nil {
		before = &windowEnd
	}
	anchor, err := r.sources.LatestApprovedCorrection(ctx, key, before)
	if err != nil {
		return Baseline{}, fmt.Errorf("última corrección aprobada: %w", err)
	}
	if anchor == nil {
		return Baseline{
			WindowStart: Epoch,
			WindowEnd:   windowEnd,
			Quantity:    decimal.Zero,
			Description: "No inventory correction found, starting from first transaction",
			Type:        BaselineFirstTransaction,
		}, nil
	}
	return Baseline{
		WindowStart:        anchor.EffectiveAt(),
		WindowEnd:          windowEnd,
		Quantity:           anchor.PhysicalCount,
		Description:        fmt.Sprintf("Inventory correction #%d%s", anchor.ID, reasonSuffix(anchor.Reason)),
		Type:               BaselineCorrection,
		AnchorCorrectionID: anchor.ID,
	}, nil
}

func (r *BaselineResolver) resolveCustomRange(
	ctx context.Context,
	key entity.LedgerKey,
	start, windowEnd time.Time,
) (Baseline, error) {
	anchor, err := r.sources.LatestApprovedCorrection(ctx, key, &start)
	if err != nil {
		return Baseline{}, fmt.Errorf("corrección previa al inicio: %w", err)
	}

	replay := entity.Window{From: Epoch, To: start, ToExclusive: true}
	opts := CollectOptions{}
	qty := decimal.Zero
	if anchor != nil {
		// El conteo físico se tomó al crear la corrección: lo posterior a ese instante se
		// repite aunque la aprobación llegue después.
		replay.From = anchor.CreatedAt
		replay.FromExclusive = true
		opts.ExcludeCorrectionID = anchor.ID
		qty = anchor.PhysicalCount
	}

	events, err := r.collector.Collect(ctx, key, replay, opts)
	if err != nil {
		return Baseline{}, fmt.Errorf("eventos previos al inicio: %w", err)
	}
	folded := ledger.Build(qty, events)

	b := Baseline{
		WindowStart:   start,
		WindowEnd:     windowEnd,
		Quantity:      folded.FinalBalance,
		Type:          BaselineCustomRange,
		ReplayedCount: len(folded.Entries),
	}
	if anchor != nil {
		b.AnchorCorrectionID = anchor.ID
		b.Description = fmt.Sprintf("Correction #%d%s + %d transactions before %s",
			anchor.ID, reasonSuffix(anchor.Reason), b.ReplayedCount, start.Format(dateLayout))
	} else {
		b.Description = fmt.Sprintf("Calculated from %d transactions before %s",
			b.ReplayedCount, start.Format(dateLayout))
	}
	return b, nil
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return " (" + reason + ")"
}
