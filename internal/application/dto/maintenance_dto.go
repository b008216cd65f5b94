package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenOrderRequest body para POST /api/maintenance-orders.
// Broken en true abre la orden en BROKEN (diagnóstico pendiente); si no, en OPEN.
type OpenOrderRequest struct {
	AssetID     string          `json:"asset_id"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Broken      bool            `json:"broken,omitempty"`
}

// AdvanceOrderStatusRequest body para PATCH /api/maintenance-orders/:id/status.
type AdvanceOrderStatusRequest struct {
	Status string `json:"status"`
}

// MaintenanceOrderResponse representación de una orden; DaysOpen se calcula en lectura.
type MaintenanceOrderResponse struct {
	ID          string          `json:"id"`
	AssetID     string          `json:"asset_id"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Status      string          `json:"status"`
	OpenedAt    time.Time       `json:"opened_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	DaysOpen    int             `json:"days_open"`
}
