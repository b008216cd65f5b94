package repository

import (
	"time"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// MaintenanceOrderRepository puerto de órdenes de mantenimiento.
type MaintenanceOrderRepository interface {
	Create(order *entity.MaintenanceOrder) error
	GetByID(id string) (*entity.MaintenanceOrder, error)
	GetForUpdate(id string) (*entity.MaintenanceOrder, error)
	GetActiveByAsset(assetID string) (*entity.MaintenanceOrder, error)
	UpdateStatus(id, status string, completedAt *time.Time) error
	ListActive(limit, offset int) ([]*entity.MaintenanceOrder, error)
	ListByAsset(assetID string, limit, offset int) ([]*entity.MaintenanceOrder, error)
}
