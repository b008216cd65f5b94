package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de mantenimiento. Progresión estrictamente hacia adelante:
// BROKEN → OPEN → WAITING_PAYMENT → COMPLETED.
const (
	MaintenanceStatusBroken         = "BROKEN"
	MaintenanceStatusOpen           = "OPEN"
	MaintenanceStatusWaitingPayment = "WAITING_PAYMENT"
	MaintenanceStatusCompleted      = "COMPLETED"
)

// MaintenanceOrder es un ticket de reparación que suspende la disponibilidad
// de un activo. Como máximo una orden activa (no COMPLETED) por activo.
type MaintenanceOrder struct {
	ID          string
	AssetID     string
	Vendor      string
	Description string
	Cost        decimal.Decimal
	Status      string
	OpenedAt    time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	CreatedBy   string
}

// IsActive indica si la orden sigue bloqueando el activo.
func (o *MaintenanceOrder) IsActive() bool {
	return o.Status != MaintenanceStatusCompleted
}
