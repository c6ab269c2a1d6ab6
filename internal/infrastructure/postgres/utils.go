package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// windowClause arma la condición de rango de col para la ventana w. first es el número del
// primer placeholder libre; devuelve la condición y sus dos argumentos (From, To).
func windowClause(col string, w entity.Window, first int) (string, []any) {
	lo, hi := ">=", "<="
	if w.FromExclusive {
		lo = ">"
	}
	if w.ToExclusive {
		hi = "<"
	}
	cond := fmt.Sprintf("%s %s $%d AND %s %s $%d", col, lo, first, col, hi, first+1)
	return cond, []any{w.From, w.To}
}

// keyArgs argumentos $1..$4 de la llave del kardex, en el orden que esperan las consultas.
func keyArgs(key entity.LedgerKey) []any {
	return []any{key.BusinessID, key.LocationID, key.ProductID, key.VariationID}
}

// collect recorre rows aplicando scan a cada fila. Cierra rows siempre.
func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
