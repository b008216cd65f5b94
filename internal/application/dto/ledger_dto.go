package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"` // IN, OUT, RETURN, LOSS
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// RegisterAdjustmentRequest body para POST /api/inventory/adjustments.
// CountedQuantity es el conteo físico; el motor calcula el delta con signo.
type RegisterAdjustmentRequest struct {
	ProductID       string          `json:"product_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Notes           string          `json:"notes,omitempty"`
}

// MovementResponse asiento del libro de movimientos.
type MovementResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Direction int              `json:"direction"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Date      time.Time        `json:"date"`
	CreatedBy string           `json:"created_by,omitempty"`
}

// StockResponse saldo actual derivado de un producto.
type StockResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LowStockItemDTO producto en o por debajo de su umbral mínimo.
type LowStockItemDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitMeasure  string          `json:"unit_measure"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
}
