package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos del kardex. Las fuentes sólo filtran por llave y
// fecha efectiva: devuelven filas en cualquier estado y, en traslados, de ambas
// direcciones. Las reglas de inclusión las aplica el recolector.
// ──────────────────────────────────────────────────────────────────────────────

var errDBDown = errors.New("conexión rechazada")

type keyed[T any] struct {
	key entity.LedgerKey
	row T
}

type fakeSources struct {
	receipts        []keyed[entity.PurchaseReceiptLine]
	sales           []keyed[entity.SaleLine]
	transfers       []keyed[entity.TransferLine] // key.LocationID se ignora; cuentan From/To
	corrections     []entity.InventoryCorrection
	purchaseReturns []keyed[entity.PurchaseReturnLine]
	customerReturns []keyed[entity.CustomerReturnLine]
	history         []keyed[entity.StockHistoryEntry]

	failOn string

	mu    sync.Mutex
	calls map[string]int
}

func newFakeSources() *fakeSources {
	return &fakeSources{calls: map[string]int{}}
}

func (f *fakeSources) hit(name string) error {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
	if f.failOn == name {
		return errDBDown
	}
	return nil
}

func (f *fakeSources) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func sameKey(a, b entity.LedgerKey) bool { return a == b }

func samePosition(a, b entity.LedgerKey) bool {
	return a.BusinessID == b.BusinessID && a.ProductID == b.ProductID && a.VariationID == b.VariationID
}

func (f *fakeSources) PurchaseReceipts(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.PurchaseReceiptLine, error) {
	if err := f.hit("receipts"); err != nil {
		return nil, err
	}
	var out []entity.PurchaseReceiptLine
	for _, r := range f.receipts {
		if sameKey(r.key, key) && w.Contains(r.row.EffectiveAt()) {
			out = append(out, r.row)
		}
	}
	return out, nil
}

func (f *fakeSources) Sales(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.SaleLine, error) {
	if err := f.hit("sales"); err != nil {
		return nil, err
	}
	var out []entity.SaleLine
	for _, r := range f.sales {
		if sameKey(r.key, key) && w.Contains(r.row.CreatedAt) {
			out = append(out, r.row)
		}
	}
	return out, nil
}

func (f *fakeSources) TransfersOut(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.TransferLine, error) {
	if err := f.hit("transfers_out"); err != nil {
		return nil, err
	}
	var out []entity.TransferLine
	for _, r := range f.transfers {
		if samePosition(r.key, key) && w.Contains(r.row.DispatchedAt()) {
			out = append(out, r.row)
		}
	}
	return out, nil
}

func (f *fakeSources) TransfersIn(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.TransferLine, error) {
	if err := f.hit("transfers_in"); err != nil {
		return nil, err
	}
	var out []entity.TransferLine
	for _, r := range f.transfers {
		if samePosition(r.key, key) && w.Contains(r.row.ArrivedAt()) {
			out = append(out, r.row)
		}
	}
	return out, nil
}

func correctionKey(c entity.InventoryCorrection) entity.LedgerKey {
	return entity.LedgerKey{BusinessID: c.BusinessID, ProductID: c.ProductID, VariationID: c.VariationID, LocationID: c.LocationID}
}

func (f *fakeSources) InventoryCorrections(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.InventoryCorrection, error) {
	if err := f.hit("corrections"); err != nil {
		return nil, err
	}
	var out []entity.InventoryCorrection
	for _, c := range f.corrections {
		if sameKey(correctionKey(c), key) && w.Contains(c.EffectiveAt()) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeSources) PurchaseReturns(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.PurchaseReturnLine, error) {
	if err := f.hit("purchase_returns"); err != nil {
		return nil, err
	}
	var out []entity.PurchaseReturnLine
	for _, r := range f.purchaseReturns {
		if sameKey(r.key, key) && w.Contains(r.row.ApprovedAt) {
			out = append(out, r.row)
		}
	}
	return out, nil
}

func (f *fakeSources) CustomerReturns(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.CustomerReturnLine, error) {
	if err := f.hit("customer_returns"); err != nil {
		return nil, err
	}
	var out []entity.CustomerReturnLine
	for _, r := range f.customerReturns {
		if sameKey(r.key, key) && w.Contains(r.row.ApprovedAt) {
			out = append(out, r.row)
		}
	}
	return out, nil
}

// StockHistory devuelve también los tipos dedicados: el filtro NOT IN debe aplicarse
// igualmente en el recolector.
func (f *fakeSources) StockHistory(_ context.Context, key entity.LedgerKey, w entity.Window) ([]entity.StockHistoryEntry, error) {
	if err := f.hit("history"); err != nil {
		return nil, err
	}
	var out []entity.StockHistoryEntry
	for _, r := range f.history {
		if sameKey(r.key, key) && w.Contains(r.row.TransactionDate) {
			out = append(out, r.row)
		}
	}
	return out, nil
}

func (f *fakeSources) LatestApprovedCorrection(_ context.Context, key entity.LedgerKey, before *time.Time) (*entity.InventoryCorrection, error) {
	if err := f.hit("latest_correction"); err != nil {
		return nil, err
	}
	var candidates []entity.InventoryCorrection
	for _, c := range f.corrections {
		if !sameKey(correctionKey(c), key) || c.Status != entity.CorrectionStatusApproved {
			continue
		}
		if before != nil && !c.EffectiveAt().Before(*before) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EffectiveAt().After(candidates[j].EffectiveAt())
	})
	c := candidates[0]
	return &c, nil
}

type fakeCatalog struct {
	products   map[int64]*entity.Product
	variations map[int64]*entity.ProductVariation
	locations  map[int64]*entity.Location
	err        error
}

func (f *fakeCatalog) GetProduct(_ context.Context, businessID string, productID int64) (*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.products[productID]
	if p == nil || p.BusinessID != businessID {
		return nil, nil
	}
	return p, nil
}

func (f *fakeCatalog) GetVariation(_ context.Context, productID, variationID int64) (*entity.ProductVariation, error) {
	v := f.variations[variationID]
	if v == nil || v.ProductID != productID {
		return nil, nil
	}
	return v, nil
}

func (f *fakeCatalog) GetLocation(_ context.Context, businessID string, locationID int64) (*entity.Location, error) {
	l := f.locations[locationID]
	if l == nil || l.BusinessID != businessID {
		return nil, nil
	}
	return l, nil
}

type fakePermissions struct {
	allowed map[string]bool // userID → tiene inventory_ledger.view
	err     error
	calls   int
}

func (f *fakePermissions) HasPermission(_ context.Context, _, userID, _ string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.allowed[userID], nil
}

type fakeStock struct {
	qty map[[2]int64]decimal.Decimal
	err error
}

func (f *fakeStock) GetCurrentStock(_ context.Context, variationID, locationID int64) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	if q, ok := f.qty[[2]int64{variationID, locationID}]; ok {
		return q, nil
	}
	return decimal.Zero, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
