package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. Cada tipo tiene efecto con signo fijo,
// salvo ADJUSTMENT cuyo signo lo calcula el motor como delta contra el saldo.
const (
	MovementTypeIN         = "IN"         // entrada por compra/entrega
	MovementTypeOUT        = "OUT"        // salida a obra
	MovementTypeRETURN     = "RETURN"     // devolución de material no usado
	MovementTypeLOSS       = "LOSS"       // pérdida, rotura, merma
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste por conteo físico
)

// MovementDirection devuelve +1 o -1 según el tipo, o 0 si el tipo no es válido
// o requiere delta calculado (ADJUSTMENT).
func MovementDirection(movementType string) int {
	switch movementType {
	case MovementTypeIN, MovementTypeRETURN:
		return 1
	case MovementTypeOUT, MovementTypeLOSS:
		return -1
	}
	return 0
}

// IsMovementType indica si el string es un tipo de movimiento registrable
// directamente (los ajustes entran por RegisterAdjustment).
func IsMovementType(s string) bool {
	return MovementDirection(s) != 0
}

// StockMovement es un asiento del libro de movimientos. Inmutable una vez creado:
// las correcciones son movimientos nuevos, nunca ediciones.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Direction int             // +1 entrada, -1 salida
	Quantity  decimal.Decimal // siempre > 0; el signo lo da Direction
	UnitPrice *decimal.Decimal
	Notes     string
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string // referencia al actor, provista por la capa llamante
}

// SignedQuantity devuelve la cantidad con signo aplicado (efecto sobre el saldo).
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Direction < 0 {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
