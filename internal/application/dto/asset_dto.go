package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest body para POST /api/assets. El activo nace AVAILABLE.
type CreateAssetRequest struct {
	Name          string           `json:"name"`
	Tag           string           `json:"tag"`
	Brand         string           `json:"brand,omitempty"`
	LocationID    string           `json:"location_id"`
	PurchasedAt   *time.Time       `json:"purchased_at,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
}

// TransferLocationRequest body para PATCH /api/assets/:id/location.
type TransferLocationRequest struct {
	LocationID string `json:"location_id"`
}

// AssetResponse representación de un activo.
type AssetResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Tag           string           `json:"tag"`
	Brand         string           `json:"brand,omitempty"`
	LocationID    string           `json:"location_id"`
	Status        string           `json:"status"`
	PurchasedAt   *time.Time       `json:"purchased_at,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name string `json:"name"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
