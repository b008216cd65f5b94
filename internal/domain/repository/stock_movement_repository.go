package repository

import (
	"time"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// MovementFilter filtros de lectura del libro de movimientos.
type MovementFilter struct {
	From   *time.Time
	To     *time.Time
	Type   string // vacío = todos
	Limit  int
	Offset int
}

// StockMovementRepository puerto append-only del libro de movimientos.
// Sin Update ni Delete: las correcciones son movimientos nuevos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, filter MovementFilter) ([]*entity.StockMovement, error)
}
