package entity

import "time"

// LedgerKey identifica una posición de stock: producto + variación + sucursal dentro de una empresa.
// Todas las consultas del kardex se filtran por la llave completa.
type LedgerKey struct {
	BusinessID  string
	ProductID   int64
	VariationID int64
	LocationID  int64
}

// Window es un rango de instantes sobre el campo de fecha efectivo de cada fuente.
// Por defecto ambos extremos son inclusivos; FromExclusive/ToExclusive los vuelven estrictos.
type Window struct {
	From          time.Time
	To            time.Time
	FromExclusive bool
	ToExclusive   bool
}

// Contains informa si t cae dentro de la ventana respetando la inclusividad de cada extremo.
func (w Window) Contains(t time.Time) bool {
	if w.FromExclusive {
		if !t.After(w.From) {
			return false
		}
	} else if t.Before(w.From) {
		return false
	}
	if w.ToExclusive {
		return t.Before(w.To)
	}
	return !t.After(w.To)
}
