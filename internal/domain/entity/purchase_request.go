package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de compra. DELIVERED es el único estado cuyo
// alcance muta datos externos: emite un movimiento IN en el libro de stock.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusApproved  = "APPROVED"
	PurchaseStatusOrdered   = "ORDERED"
	PurchaseStatusRejected  = "REJECTED"
	PurchaseStatusDelivered = "DELIVERED"
)

// PurchaseRequest es una solicitud de compra de insumos con pipeline de aprobación.
type PurchaseRequest struct {
	ID          string
	ProductID   string
	Quantity    decimal.Decimal
	UnitMeasure string
	Requester   string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeliveredAt *time.Time
}
