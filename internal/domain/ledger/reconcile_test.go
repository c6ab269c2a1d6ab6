package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-ledger/internal/domain/ledger"
)

func TestReconcile_Coincide(t *testing.T) {
	r := ledger.Reconcile(dec("110"), dec("110"))

	assert.True(t, r.IsReconciled)
	assert.Equal(t, ledger.StatusMatched, r.Status)
	assertDec(t, "0", r.Variance)
}

func TestReconcile_Discrepancia_VarianzaConSigno(t *testing.T) {
	r := ledger.Reconcile(dec("105"), dec("110"))

	assert.False(t, r.IsReconciled)
	assert.Equal(t, ledger.StatusDiscrepancy, r.Status)
	assertDec(t, "-5", r.Variance)
	assertDec(t, "105", r.CalculatedFinalBalance)
	assertDec(t, "110", r.CurrentSystemInventory)
}

// Residuos por debajo de 0.0001 (p. ej. cantidades guardadas como float) se toleran.
func TestReconcile_ToleranciaEpsilon(t *testing.T) {
	assert.True(t, ledger.Reconcile(dec("10.00009"), dec("10")).IsReconciled)
	assert.False(t, ledger.Reconcile(dec("10.0001"), dec("10")).IsReconciled)
	assert.False(t, ledger.Reconcile(dec("9.9998"), dec("10")).IsReconciled)
}
