package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitMeasure  string          `json:"unit_measure"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	UnitMeasure  *string          `json:"unit_measure,omitempty"`
	MinThreshold *decimal.Decimal `json:"min_threshold,omitempty"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitMeasure  string          `json:"unit_measure"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
