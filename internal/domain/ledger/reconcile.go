package ledger

import "github.com/shopspring/decimal"

// Estados de la conciliación.
const (
	StatusMatched     = "Matched"
	StatusDiscrepancy = "Discrepancy"
)

// Epsilon tolera residuos de fuentes que guardan cantidades como float.
var Epsilon = decimal.New(1, -4)

// Reconciliation compara el saldo calculado por el kardex con el stock registrado.
type Reconciliation struct {
	CalculatedFinalBalance decimal.Decimal
	CurrentSystemInventory decimal.Decimal
	Variance               decimal.Decimal // calculado - registrado
	IsReconciled           bool
	Status                 string
}

// Reconcile es una comparación pura; |variance| < Epsilon se considera conciliado.
func Reconcile(calculated, current decimal.Decimal) Reconciliation {
	variance := calculated.Sub(current)
	ok := variance.Abs().LessThan(Epsilon)
	status := StatusDiscrepancy
	if ok {
		status = StatusMatched
	}
	return Reconciliation{
		CalculatedFinalBalance: calculated,
		CurrentSystemInventory: current,
		Variance:               variance,
		IsReconciled:           ok,
		Status:                 status,
	}
}
