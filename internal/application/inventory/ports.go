package inventory

import "time"

// PermissionLedgerView es el permiso requerido para consultar el kardex.
const PermissionLedgerView = "inventory_ledger.view"

// Actor usuario autenticado que solicita el reporte (extraído del token por la capa HTTP).
type Actor struct {
	UserID     string
	BusinessID string
}

// Clock abstrae el reloj; el kardex usa "ahora" como fin de ventana por defecto.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj real del proceso.
type SystemClock struct{}

// Now devuelve time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
