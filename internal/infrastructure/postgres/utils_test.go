package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

func TestWindowClause_Inclusiva(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	cond, args := windowClause("s.created_at", entity.Window{From: from, To: to}, 5)

	assert.Equal(t, "s.created_at >= $5 AND s.created_at <= $6", cond)
	assert.Equal(t, []any{from, to}, args)
}

func TestWindowClause_Exclusiva(t *testing.T) {
	w := entity.Window{From: time.Unix(0, 0), To: time.Now(), FromExclusive: true, ToExclusive: true}

	cond, _ := windowClause("COALESCE(c.approved_at, c.created_at)", w, 1)

	assert.Equal(t, "COALESCE(c.approved_at, c.created_at) > $1 AND COALESCE(c.approved_at, c.created_at) < $2", cond)
}

func TestKeyArgs_Orden(t *testing.T) {
	key := entity.LedgerKey{BusinessID: "b", ProductID: 10, VariationID: 20, LocationID: 1}
	assert.Equal(t, []any{"b", int64(1), int64(10), int64(20)}, keyArgs(key))
}
