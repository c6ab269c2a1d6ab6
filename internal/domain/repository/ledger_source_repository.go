package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// LedgerSourceRepository agrupa las consultas de solo lectura que alimentan el kardex.
// Cada consulta filtra por la llave completa y por su propio campo de fecha efectiva
// dentro de la ventana, aplicando el filtro de estado de su fuente:
//
//	PurchaseReceipts      COALESCE(approved_at, created_at)  status = approved
//	Sales                 created_at                         status = completed
//	TransfersOut          sent_at                            status ∈ {in_transit, received, completed} y stock_deducted
//	TransfersIn           received_at                        status ∈ {received, completed}
//	InventoryCorrections  COALESCE(approved_at, created_at)  status = approved
//	PurchaseReturns       approved_at                        status = approved
//	CustomerReturns       approved_at                        status = approved
//	StockHistory          transaction_date                   transaction_type NOT IN DedicatedHistoryTypes
type LedgerSourceRepository interface {
	PurchaseReceipts(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.PurchaseReceiptLine, error)
	Sales(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.SaleLine, error)
	TransfersOut(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.TransferLine, error)
	TransfersIn(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.TransferLine, error)
	InventoryCorrections(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.InventoryCorrection, error)
	PurchaseReturns(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.PurchaseReturnLine, error)
	CustomerReturns(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.CustomerReturnLine, error)
	StockHistory(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.StockHistoryEntry, error)

	// LatestApprovedCorrection devuelve la corrección aprobada más reciente de la posición
	// (por fecha de aprobación, con respaldo en la de creación). Con before != nil solo
	// considera correcciones aprobadas estrictamente antes de ese instante. (nil, nil) si no hay.
	LatestApprovedCorrection(ctx context.Context, key entity.LedgerKey, before *time.Time) (*entity.InventoryCorrection, error)
}
