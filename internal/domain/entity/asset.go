package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un activo. El estado lo escribe únicamente el
// Lifecycle Manager; el resto de componentes solo lo leen.
const (
	AssetStatusAvailable   = "AVAILABLE"
	AssetStatusInUse       = "IN_USE"
	AssetStatusMaintenance = "MAINTENANCE"
	AssetStatusDiscarded   = "DISCARDED"
)

// Asset representa un activo durable de la empresa (taladro, mezcladora, andamio...).
type Asset struct {
	ID            string
	Name          string
	Tag           string // código único de placa/QR
	Brand         string
	LocationID    string
	Status        string
	PurchasedAt   *time.Time
	PurchasePrice *decimal.Decimal
	Supplier      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
