package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo actual de un producto (tabla materializada).
// Invariante: Quantity == Σ(direction * quantity) de sus movimientos; se
// actualiza únicamente dentro de la misma transacción que inserta el movimiento.
type Stock struct {
	ProductID string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
