package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// GenerateLedgerUseCase genera el kardex conciliado de una variación en una sucursal.
//
// Etapas: saldo base (BaselineResolver) → eventos de la ventana (EventCollector) →
// pliegue con saldo corrido (ledger.Build) → conciliación contra el stock registrado.
// Es de solo lectura y sin estado entre peticiones; todo o nada ante errores.
type GenerateLedgerUseCase struct {
	permissions repository.PermissionRepository
	catalog     repository.CatalogRepository
	stock       repository.StockRepository
	resolver    *BaselineResolver
	collector   *EventCollector
	clock       Clock
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewGenerateLedgerUseCase construye el caso de uso.
func NewGenerateLedgerUseCase(
	permissions repository.PermissionRepository,
	catalog repository.CatalogRepository,
	sources repository.LedgerSourceRepository,
	stock repository.StockRepository,
	clock Clock,
	log zerolog.Logger,
) *GenerateLedgerUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	collector := NewEventCollector(sources)
	return &GenerateLedgerUseCase{
		permissions: permissions,
		catalog:     catalog,
		stock:       stock,
		resolver:    NewBaselineResolver(sources, collector),
		collector:   collector,
		clock:       clock,
		validate:    validator.New(),
		log:         log,
	}
}

// ledgerRequest parámetros ya validados.
type ledgerRequest struct {
	productID   int64
	variationID int64
	locationID  int64
	start       *time.Time
	end         *time.Time
}

type ledgerTarget struct {
	product   *entity.Product
	variation *entity.ProductVariation
	location  *entity.Location
}

// Generate valida en orden estricto (sesión → permiso → parámetros → existencia) antes de
// tocar las fuentes del kardex, y luego construye el reporte completo.
func (uc *GenerateLedgerUseCase) Generate(ctx context.Context, actor *Actor, q dto.LedgerQuery) (*dto.LedgerReportDTO, error) {
	ctx, span := tracer.Start(ctx, "ledger.generate")
	defer span.End()

	if actor == nil || actor.UserID == "" || actor.BusinessID == "" {
		return nil, domain.ErrUnauthenticated
	}
	log := uc.log.With().Str("business_id", actor.BusinessID).Str("user_id", actor.UserID).Logger()

	allowed, err := uc.permissions.HasPermission(ctx, actor.BusinessID, actor.UserID, PermissionLedgerView)
	if err != nil {
		return nil, uc.fail(span, log, fmt.Errorf("ledger: verificar permiso: %w", err))
	}
	if !allowed {
		log.Warn().Str("permission", PermissionLedgerView).Msg("kardex: permiso denegado")
		return nil, domain.ErrForbidden
	}

	now := uc.clock.Now()
	req, err := uc.parseQuery(q, now.Location())
	if err != nil {
		log.Warn().Err(err).Msg("kardex: parámetros inválidos")
		return nil, err
	}

	target, err := uc.resolveTarget(ctx, actor.BusinessID, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Msg("kardex: posición no encontrada")
			return nil, err
		}
		return nil, uc.fail(span, log, err)
	}

	key := entity.LedgerKey{
		BusinessID:  actor.BusinessID,
		ProductID:   req.productID,
		VariationID: req.variationID,
		LocationID:  req.locationID,
	}
	span.SetAttributes(
		attribute.Int64("ledger.product_id", key.ProductID),
		attribute.Int64("ledger.variation_id", key.VariationID),
		attribute.Int64("ledger.location_id", key.LocationID),
	)

	baseline, events, current, err := uc.gather(ctx, key, req, now)
	if err != nil {
		return nil, uc.fail(span, log, err)
	}

	built := ledger.Build(baseline.Quantity, events)
	rec := ledger.Reconcile(built.FinalBalance, current)

	report := toLedgerReport(uuid.New().String(), key, target, baseline, built, rec, now)

	log.Info().
		Str("report_id", report.Header.ReportID).
		Int64("variation_id", key.VariationID).
		Int64("location_id", key.LocationID).
		Time("window_start", baseline.WindowStart).
		Time("window_end", baseline.WindowEnd).
		Str("baseline_type", baseline.Type).
		Int("transactions", len(built.Entries)).
		Str("variance", rec.Variance.String()).
		Str("status", rec.Status).
		Msg("kardex generado")
	return report, nil
}

// gather obtiene saldo base, eventos de la ventana y stock registrado.
// Con fecha de inicio la ventana se conoce de antemano y las tres lecturas van en paralelo;
// sin ella primero se resuelve la corrección ancla (una consulta) y luego se paraleliza.
func (uc *GenerateLedgerUseCase) gather(
	ctx context.Context,
	key entity.LedgerKey,
	req ledgerRequest,
	now time.Time,
) (Baseline, []ledger.StockEvent, decimal.Decimal, error) {
	var (
		baseline Baseline
		events   []ledger.StockEvent
		current  decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	if req.start == nil {
		b, err := uc.resolver.Resolve(ctx, key, nil, req.end, now)
		if err != nil {
			return Baseline{}, nil, decimal.Zero, fmt.Errorf("ledger: saldo base: %w", err)
		}
		baseline = b
		w := entity.Window{From: b.WindowStart, To: b.WindowEnd}
		opts := CollectOptions{CorrectionsFromExclusive: true, ExcludeCorrectionID: b.AnchorCorrectionID}
		g.Go(func() error {
			evs, err := uc.collector.Collect(gctx, key, w, opts)
			if err != nil {
				return fmt.Errorf("ledger: eventos: %w", err)
			}
			events = evs
			return nil
		})
	} else {
		w := entity.Window{From: *req.start, To: WindowEnd(req.end, now)}
		g.Go(func() error {
			b, err := uc.resolver.Resolve(gctx, key, req.start, req.end, now)
			if err != nil {
				return fmt.Errorf("ledger: saldo base: %w", err)
			}
			baseline = b
			return nil
		})
		g.Go(func() error {
			evs, err := uc.collector.Collect(gctx, key, w, CollectOptions{})
			if err != nil {
				return fmt.Errorf("ledger: eventos: %w", err)
			}
			events = evs
			return nil
		})
	}
	g.Go(func() error {
		qty, err := uc.stock.GetCurrentStock(gctx, key.VariationID, key.LocationID)
		if err != nil {
			return fmt.Errorf("ledger: stock actual: %w", err)
		}
		current = qty
		return nil
	})
	if err := g.Wait(); err != nil {
		return Baseline{}, nil, decimal.Zero, err
	}
	return baseline, events, current, nil
}

func (uc *GenerateLedgerUseCase) parseQuery(q dto.LedgerQuery, loc *time.Location) (ledgerRequest, error) {
	if err := uc.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return ledgerRequest{}, fmt.Errorf("%w: %s (%s)", domain.ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		return ledgerRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var req ledgerRequest
	var err error
	if req.productID, err = parseID("product_id", q.ProductID); err != nil {
		return ledgerRequest{}, err
	}
	if req.variationID, err = parseID("variation_id", q.VariationID); err != nil {
		return ledgerRequest{}, err
	}
	if req.locationID, err = parseID("location_id", q.LocationID); err != nil {
		return ledgerRequest{}, err
	}
	if req.start, err = parseDate("start_date", q.StartDate, loc); err != nil {
		return ledgerRequest{}, err
	}
	if req.end, err = parseDate("end_date", q.EndDate, loc); err != nil {
		return ledgerRequest{}, err
	}
	if req.start != nil && req.end != nil && req.start.After(endOfDay(*req.end)) {
		return ledgerRequest{}, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return req, nil
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, field)
	}
	return id, nil
}

// parseDate acepta YYYY-MM-DD (medianoche en loc) o RFC3339. Vacío = nil.
func parseDate(field, raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, field)
}

// resolveTarget verifica que producto, variación y sucursal existan y pertenezcan a la empresa.
func (uc *GenerateLedgerUseCase) resolveTarget(ctx context.Context, businessID string, req ledgerRequest) (ledgerTarget, error) {
	product, err := uc.catalog.GetProduct(ctx, businessID, req.productID)
	if err != nil {
		return ledgerTarget{}, fmt.Errorf("ledger: producto: %w", err)
	}
	if product == nil || product.BusinessID != businessID {
		return ledgerTarget{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, req.productID)
	}
	variation, err := uc.catalog.GetVariation(ctx, req.productID, req.variationID)
	if err != nil {
		return ledgerTarget{}, fmt.Errorf("ledger: variación: %w", err)
	}
	if variation == nil || variation.ProductID != product.ID {
		return ledgerTarget{}, fmt.Errorf("%w: variación %d", domain.ErrNotFound, req.variationID)
	}
	location, err := uc.catalog.GetLocation(ctx, businessID, req.locationID)
	if err != nil {
		return ledgerTarget{}, fmt.Errorf("ledger: sucursal: %w", err)
	}
	if location == nil || location.BusinessID != businessID {
		return ledgerTarget{}, fmt.Errorf("%w: sucursal %d", domain.ErrNotFound, req.locationID)
	}
	return ledgerTarget{product: product, variation: variation, location: location}, nil
}

func (uc *GenerateLedgerUseCase) fail(span trace.Span, log zerolog.Logger, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.Error().Err(err).Msg("kardex: falla interna")
	return err
}

func toLedgerReport(
	reportID string,
	key entity.LedgerKey,
	target ledgerTarget,
	baseline Baseline,
	built ledger.Ledger,
	rec ledger.Reconciliation,
	now time.Time,
) *dto.LedgerReportDTO {
	txs := make([]dto.LedgerTransactionDTO, 0, len(built.Entries))
	for _, e := range built.Entries {
		txs = append(txs, dto.LedgerTransactionDTO{
			Date:            e.Timestamp,
			Kind:            string(e.Kind),
			Type:            e.Kind.Label(),
			ReferenceNo:     e.ReferenceNumber,
			Description:     e.Description,
			Actor:           e.Actor,
			RelatedLocation: e.RelatedLocation,
			QuantityIn:      e.QuantityIn,
			QuantityOut:     e.QuantityOut,
			RunningBalance:  e.RunningBalance,
			SourceID:        e.SourceID,
			SourceType:      e.SourceType,
		})
	}
	return &dto.LedgerReportDTO{
		Header: dto.LedgerHeaderDTO{
			ReportID:            reportID,
			BusinessID:          key.BusinessID,
			Product:             dto.LedgerRefDTO{ID: target.product.ID, Name: target.product.Name, SKU: target.product.SKU},
			Variation:           dto.LedgerRefDTO{ID: target.variation.ID, Name: target.variation.Name, SKU: target.variation.SubSKU},
			Location:            dto.LedgerRefDTO{ID: target.location.ID, Name: target.location.Name},
			WindowStart:         baseline.WindowStart,
			WindowEnd:           baseline.WindowEnd,
			BaselineType:        baseline.Type,
			BaselineDescription: baseline.Description,
			BaselineQuantity:    baseline.Quantity,
			GeneratedAt:         now,
		},
		Transactions: txs,
		Summary: dto.LedgerSummaryDTO{
			TotalStockIn:           built.TotalIn,
			TotalStockOut:          built.TotalOut,
			NetChange:              built.NetChange,
			StartingBalance:        built.StartingBalance,
			CalculatedFinalBalance: rec.CalculatedFinalBalance,
			CurrentSystemInventory: rec.CurrentSystemInventory,
			Variance:               rec.Variance,
			IsReconciled:           rec.IsReconciled,
			Status:                 rec.Status,
			TransactionCount:       len(txs),
		},
	}
}
