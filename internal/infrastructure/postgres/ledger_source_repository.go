package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.LedgerSourceRepository = (*LedgerSourceRepo)(nil)

// LedgerSourceRepo lecturas del kardex sobre PostgreSQL. Todas las consultas reciben la
// llave en $1..$4 (empresa, sucursal, producto, variación) y la ventana en $5..$6.
type LedgerSourceRepo struct {
	q Querier
}

// NewLedgerSourceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerSourceRepository(q Querier) *LedgerSourceRepo {
	return &LedgerSourceRepo{q: q}
}

func (r *LedgerSourceRepo) query(ctx context.Context, sql string, key entity.LedgerKey, w entity.Window, col string) (pgx.Rows, error) {
	cond, wargs := windowClause(col, w, 5)
	args := append(keyArgs(key), wargs...)
	return r.q.Query(ctx, fmt.Sprintf(sql, cond), args...)
}

// PurchaseReceipts líneas de recepciones de mercancía aprobadas.
func (r *LedgerSourceRepo) PurchaseReceipts(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.PurchaseReceiptLine, error) {
	const sql = `
		SELECT gi.id, g.id, g.grn_number, g.status, COALESCE(s.name, ''), COALESCE(u.name, ''),
		       gi.quantity_received, g.created_at, g.approved_at
		FROM grn_items gi
		JOIN goods_received_notes g ON g.id = gi.grn_id
		LEFT JOIN suppliers s ON s.id = g.supplier_id
		LEFT JOIN users u ON u.id = COALESCE(g.approved_by, g.received_by)
		WHERE g.business_id = $1 AND g.location_id = $2 AND gi.product_id = $3 AND gi.variation_id = $4
		  AND g.status = 'approved' AND %s
		ORDER BY COALESCE(g.approved_at, g.created_at), gi.id`
	rows, err := r.query(ctx, sql, key, w, "COALESCE(g.approved_at, g.created_at)")
	if err != nil {
		return nil, fmt.Errorf("ledger.PurchaseReceipts: %w", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (entity.PurchaseReceiptLine, error) {
		var l entity.PurchaseReceiptLine
		err := rows.Scan(&l.ID, &l.GRNID, &l.GRNNumber, &l.Status, &l.SupplierName, &l.ReceivedBy,
			&l.Quantity, &l.CreatedAt, &l.ApprovedAt)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.PurchaseReceipts: %w", err)
	}
	return out, nil
}

// Sales líneas de ventas completadas.
func (r *LedgerSourceRepo) Sales(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.SaleLine, error) {
	const sql = `
		SELECT si.id, s.id, s.invoice_number, s.status, COALESCE(c.name, ''), COALESCE(u.name, ''),
		       si.quantity, s.created_at
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		LEFT JOIN customers c ON c.id = s.customer_id
		LEFT JOIN users u ON u.id = s.created_by
		WHERE s.business_id = $1 AND s.location_id = $2 AND si.product_id = $3 AND si.variation_id = $4
		  AND s.status = 'completed' AND %s
		ORDER BY s.created_at, si.id`
	rows, err := r.query(ctx, sql, key, w, "s.created_at")
	if err != nil {
		return nil, fmt.Errorf("ledger.Sales: %w", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (entity.SaleLine, error) {
		var l entity.SaleLine
		err := rows.Scan(&l.ID, &l.SaleID, &l.InvoiceNumber, &l.Status, &l.CustomerName, &l.CashierName,
			&l.Quantity, &l.CreatedAt)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.Sales: %w", err)
	}
	return out, nil
}

// transferSelect columnas comunes de traslados; %s recibe el filtro de sucursal, estado y ventana.
const transferSelect = `
		SELECT ti.id, t.id, t.transfer_number, t.status,
		       t.from_location_id, COALESCE(fl.name, ''), t.to_location_id, COALESCE(tl.name, ''),
		       t.stock_deducted, COALESCE(us.name, ''), COALESCE(ur.name, ''),
		       ti.quantity, t.sent_at, t.received_at, t.completed_at, t.created_at
		FROM stock_transfer_items ti
		JOIN stock_transfers t ON t.id = ti.transfer_id
		LEFT JOIN business_locations fl ON fl.id = t.from_location_id
		LEFT JOIN business_locations tl ON tl.id = t.to_location_id
		LEFT JOIN users us ON us.id = t.sent_by
		LEFT JOIN users ur ON ur.id = t.received_by
		WHERE t.business_id = $1 AND ti.product_id = $3 AND ti.variation_id = $4 AND %s`

func scanTransfer(rows pgx.Rows) (entity.TransferLine, error) {
	var l entity.TransferLine
	err := rows.Scan(&l.ID, &l.TransferID, &l.TransferNumber, &l.Status,
		&l.FromLocationID, &l.FromLocationName, &l.ToLocationID, &l.ToLocationName,
		&l.StockDeducted, &l.SentBy, &l.ReceivedBy,
		&l.Quantity, &l.SentAt, &l.ReceivedAt, &l.CompletedAt, &l.CreatedAt)
	return l, err
}

// TransfersOut salidas por traslado desde la sucursal, contadas al enviarse
// (creación si el traslado no registró sent_at).
func (r *LedgerSourceRepo) TransfersOut(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.TransferLine, error) {
	const effective = "COALESCE(t.sent_at, t.created_at)"
	cond, wargs := windowClause(effective, w, 5)
	filter := "t.from_location_id = $2 AND t.status IN ('in_transit', 'received', 'completed') AND t.stock_deducted AND " + cond
	rows, err := r.q.Query(ctx, fmt.Sprintf(transferSelect, filter)+" ORDER BY "+effective+", ti.id",
		append(keyArgs(key), wargs...)...)
	if err != nil {
		return nil, fmt.Errorf("ledger.TransfersOut: %w", err)
	}
	out, err := collect(rows, scanTransfer)
	if err != nil {
		return nil, fmt.Errorf("ledger.TransfersOut: %w", err)
	}
	return out, nil
}

// TransfersIn entradas por traslado hacia la sucursal, contadas al recibirse.
func (r *LedgerSourceRepo) TransfersIn(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.TransferLine, error) {
	const effective = "COALESCE(t.received_at, t.created_at)"
	cond, wargs := windowClause(effective, w, 5)
	filter := "t.to_location_id = $2 AND t.status IN ('received', 'completed') AND " + cond
	rows, err := r.q.Query(ctx, fmt.Sprintf(transferSelect, filter)+" ORDER BY "+effective+", ti.id",
		append(keyArgs(key), wargs...)...)
	if err != nil {
		return nil, fmt.Errorf("ledger.TransfersIn: %w", err)
	}
	out, err := collect(rows, scanTransfer)
	if err != nil {
		return nil, fmt.Errorf("ledger.TransfersIn: %w", err)
	}
	return out, nil
}

const correctionSelect = `
		SELECT c.id, c.business_id, c.product_id, c.variation_id, c.location_id,
		       c.system_count, c.physical_count, c.difference, COALESCE(c.reason, ''), c.status,
		       COALESCE(u.name, ''), c.created_at, c.approved_at
		FROM inventory_corrections c
		LEFT JOIN users u ON u.id = c.approved_by
		WHERE c.business_id = $1 AND c.location_id = $2 AND c.product_id = $3 AND c.variation_id = $4
		  AND c.status = 'approved'`

func scanCorrection(row pgx.Row) (entity.InventoryCorrection, error) {
	var c entity.InventoryCorrection
	err := row.Scan(&c.ID, &c.BusinessID, &c.ProductID, &c.VariationID, &c.LocationID,
		&c.SystemCount, &c.PhysicalCount, &c.Difference, &c.Reason, &c.Status,
		&c.ApprovedBy, &c.CreatedAt, &c.ApprovedAt)
	return c, err
}

// InventoryCorrections correcciones aprobadas dentro de la ventana.
func (r *LedgerSourceRepo) InventoryCorrections(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.InventoryCorrection, error) {
	const effective = "COALESCE(c.approved_at, c.created_at)"
	cond, wargs := windowClause(effective, w, 5)
	rows, err := r.q.Query(ctx, correctionSelect+" AND "+cond+" ORDER BY "+effective+", c.id",
		append(keyArgs(key), wargs...)...)
	if err != nil {
		return nil, fmt.Errorf("ledger.InventoryCorrections: %w", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (entity.InventoryCorrection, error) {
		return scanCorrection(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.InventoryCorrections: %w", err)
	}
	return out, nil
}

// LatestApprovedCorrection corrección aprobada más reciente de la posición; con before,
// solo las aprobadas estrictamente antes de ese instante.
func (r *LedgerSourceRepo) LatestApprovedCorrection(ctx context.Context, key entity.LedgerKey, before *time.Time) (*entity.InventoryCorrection, error) {
	const effective = "COALESCE(c.approved_at, c.created_at)"
	sql := correctionSelect
	args := keyArgs(key)
	if before != nil {
		sql += " AND " + effective + " < $5"
		args = append(args, *before)
	}
	sql += " ORDER BY " + effective + " DESC, c.id DESC LIMIT 1"

	c, err := scanCorrection(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ledger.LatestApprovedCorrection: %w", err)
	}
	return &c, nil
}

// PurchaseReturns devoluciones a proveedor aprobadas.
func (r *LedgerSourceRepo) PurchaseReturns(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.PurchaseReturnLine, error) {
	const sql = `
		SELECT ri.id, rt.id, rt.return_number, rt.status, COALESCE(s.name, ''), COALESCE(u.name, ''),
		       COALESCE(rt.reason, ''), ri.quantity, rt.approved_at
		FROM supplier_return_items ri
		JOIN supplier_returns rt ON rt.id = ri.return_id
		LEFT JOIN suppliers s ON s.id = rt.supplier_id
		LEFT JOIN users u ON u.id = rt.processed_by
		WHERE rt.business_id = $1 AND rt.location_id = $2 AND ri.product_id = $3 AND ri.variation_id = $4
		  AND rt.status = 'approved' AND %s
		ORDER BY rt.approved_at, ri.id`
	rows, err := r.query(ctx, sql, key, w, "rt.approved_at")
	if err != nil {
		return nil, fmt.Errorf("ledger.PurchaseReturns: %w", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (entity.PurchaseReturnLine, error) {
		var l entity.PurchaseReturnLine
		err := rows.Scan(&l.ID, &l.ReturnID, &l.ReturnNumber, &l.Status, &l.SupplierName, &l.ProcessedBy,
			&l.Reason, &l.Quantity, &l.ApprovedAt)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.PurchaseReturns: %w", err)
	}
	return out, nil
}

// CustomerReturns devoluciones de clientes aprobadas.
func (r *LedgerSourceRepo) CustomerReturns(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.CustomerReturnLine, error) {
	const sql = `
		SELECT ri.id, rt.id, rt.return_number, rt.status, COALESCE(c.name, ''), COALESCE(u.name, ''),
		       COALESCE(rt.reason, ''), ri.quantity, rt.approved_at
		FROM customer_return_items ri
		JOIN customer_returns rt ON rt.id = ri.return_id
		LEFT JOIN customers c ON c.id = rt.customer_id
		LEFT JOIN users u ON u.id = rt.processed_by
		WHERE rt.business_id = $1 AND rt.location_id = $2 AND ri.product_id = $3 AND ri.variation_id = $4
		  AND rt.status = 'approved' AND %s
		ORDER BY rt.approved_at, ri.id`
	rows, err := r.query(ctx, sql, key, w, "rt.approved_at")
	if err != nil {
		return nil, fmt.Errorf("ledger.CustomerReturns: %w", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (entity.CustomerReturnLine, error) {
		var l entity.CustomerReturnLine
		err := rows.Scan(&l.ID, &l.ReturnID, &l.ReturnNumber, &l.Status, &l.CustomerName, &l.ProcessedBy,
			&l.Reason, &l.Quantity, &l.ApprovedAt)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.CustomerReturns: %w", err)
	}
	return out, nil
}

// StockHistory movimientos del historial general que no tienen fuente dedicada.
func (r *LedgerSourceRepo) StockHistory(ctx context.Context, key entity.LedgerKey, w entity.Window) ([]entity.StockHistoryEntry, error) {
	const sql = `
		SELECT h.id, h.transaction_type, COALESCE(h.reference_type, ''), COALESCE(h.reference_id, ''),
		       COALESCE(h.reason, ''), COALESCE(u.name, ''), h.quantity_change, h.transaction_date
		FROM product_history h
		LEFT JOIN users u ON u.id = h.created_by
		WHERE h.business_id = $1 AND h.location_id = $2 AND h.product_id = $3 AND h.variation_id = $4
		  AND NOT (h.transaction_type = ANY($7)) AND %s
		ORDER BY h.transaction_date, h.id`
	cond, wargs := windowClause("h.transaction_date", w, 5)
	args := append(keyArgs(key), wargs...)
	args = append(args, entity.DedicatedHistoryTypes)
	rows, err := r.q.Query(ctx, fmt.Sprintf(sql, cond), args...)
	if err != nil {
		return nil, fmt.Errorf("ledger.StockHistory: %w", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (entity.StockHistoryEntry, error) {
		var h entity.StockHistoryEntry
		err := rows.Scan(&h.ID, &h.TransactionType, &h.ReferenceType, &h.ReferenceID,
			&h.Reason, &h.CreatedBy, &h.QuantityChange, &h.TransactionDate)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.StockHistory: %w", err)
	}
	return out, nil
}
