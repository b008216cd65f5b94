package repository

import (
	"time"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// CheckoutRepository puerto de préstamos de activos. Close es la única
// escritura sobre un préstamo existente (sella returned_at una sola vez).
type CheckoutRepository interface {
	Create(checkout *entity.Checkout) error
	GetByID(id string) (*entity.Checkout, error)
	GetForUpdate(id string) (*entity.Checkout, error)
	GetOpenByAsset(assetID string) (*entity.Checkout, error)
	Close(id string, returnedAt time.Time) error
	ListOpen(limit, offset int) ([]*entity.Checkout, error)
	ListByAsset(assetID string, limit, offset int) ([]*entity.Checkout, error)
}
