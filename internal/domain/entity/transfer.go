package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del flujo de traslado entre sucursales.
// La verificación y el cierre (completed) son administrativos: el stock sale al enviar
// (SentAt) y entra al recibir (ReceivedAt).
const (
	TransferStatusDraft     = "draft"
	TransferStatusPending   = "pending_check"
	TransferStatusInTransit = "in_transit"
	TransferStatusReceived  = "received"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// TransferLine es una línea de traslado vista desde una de las dos sucursales.
type TransferLine struct {
	ID               int64
	TransferID       int64
	TransferNumber   string
	Status           string
	FromLocationID   int64
	FromLocationName string
	ToLocationID     int64
	ToLocationName   string
	StockDeducted    bool
	SentBy           string
	ReceivedBy       string
	Quantity         decimal.Decimal
	SentAt           *time.Time
	ReceivedAt       *time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
}

// DispatchedAt instante en que el stock sale del origen. Los traslados antiguos sin
// sent_at usan la fecha de creación.
func (l TransferLine) DispatchedAt() time.Time {
	if l.SentAt != nil {
		return *l.SentAt
	}
	return l.CreatedAt
}

// ArrivedAt instante en que el stock entra al destino, con la misma regla de respaldo.
func (l TransferLine) ArrivedAt() time.Time {
	if l.ReceivedAt != nil {
		return *l.ReceivedAt
	}
	return l.CreatedAt
}
