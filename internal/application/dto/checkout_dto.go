package dto

import "time"

// CreateCheckoutRequest body para POST /api/checkouts.
type CreateCheckoutRequest struct {
	AssetID        string     `json:"asset_id"`
	WorkerName     string     `json:"worker_name"`
	ExpectedReturn *time.Time `json:"expected_return,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// CheckoutResponse representación de un préstamo; Overdue se calcula en lectura.
type CheckoutResponse struct {
	ID             string     `json:"id"`
	AssetID        string     `json:"asset_id"`
	WorkerName     string     `json:"worker_name"`
	CheckedOutAt   time.Time  `json:"checked_out_at"`
	ExpectedReturn *time.Time `json:"expected_return,omitempty"`
	ReturnedAt     *time.Time `json:"returned_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Overdue        bool       `json:"overdue"`
}
