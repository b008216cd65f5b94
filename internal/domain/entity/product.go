package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo consumible del almacén de obra (cemento, tornillería, cable...).
// El stock actual NO vive aquí: se materializa en Stock y solo lo muta el motor de movimientos.
type Product struct {
	ID           string
	Name         string
	Category     string
	UnitMeasure  string          // und, kg, m, bolsa, galón...
	MinThreshold decimal.Decimal // umbral de stock bajo
	Active       bool            // retiro lógico; el historial nunca se borra
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
