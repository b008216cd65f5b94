package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchase-requests.
type CreatePurchaseRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitMeasure string          `json:"unit_measure"`
}

// UpdatePurchaseStatusRequest body para PATCH /api/purchase-requests/:id/status.
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status"`
}

// PurchaseRequestResponse representación de una solicitud de compra.
type PurchaseRequestResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitMeasure string          `json:"unit_measure"`
	Requester   string          `json:"requester"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
}
