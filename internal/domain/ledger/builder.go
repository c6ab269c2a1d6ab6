package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Entry es un evento ya ordenado con el saldo corrido resultante de aplicarlo.
type Entry struct {
	StockEvent
	RunningBalance decimal.Decimal
}

// Ledger es el resultado del pliegue cronológico sobre un saldo inicial.
// Invariante: FinalBalance == StartingBalance + TotalIn - TotalOut.
type Ledger struct {
	StartingBalance decimal.Decimal
	Entries         []Entry
	TotalIn         decimal.Decimal
	TotalOut        decimal.Decimal
	NetChange       decimal.Decimal
	FinalBalance    decimal.Decimal
}

// Build ordena los eventos por fecha ascendente y calcula el saldo corrido desde baseline.
// El orden es estable: ante fechas iguales se conserva el orden de inserción por fuente.
// No modifica el slice recibido.
func Build(baseline decimal.Decimal, events []StockEvent) Ledger {
	sorted := make([]StockEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	l := Ledger{
		StartingBalance: baseline,
		Entries:         make([]Entry, 0, len(sorted)),
		TotalIn:         decimal.Zero,
		TotalOut:        decimal.Zero,
	}
	balance := baseline
	for _, ev := range sorted {
		balance = balance.Add(ev.Delta())
		l.TotalIn = l.TotalIn.Add(ev.QuantityIn)
		l.TotalOut = l.TotalOut.Add(ev.QuantityOut)
		l.Entries = append(l.Entries, Entry{StockEvent: ev, RunningBalance: balance})
	}
	l.NetChange = l.TotalIn.Sub(l.TotalOut)
	l.FinalBalance = balance
	return l
}
