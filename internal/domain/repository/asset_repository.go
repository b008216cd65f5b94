package repository

import (
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// AssetRepository puerto de persistencia de activos. UpdateStatus y
// UpdateLocation existen por separado: el estado es propiedad exclusiva del
// Lifecycle Manager y la ubicación es ortogonal al estado.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	GetByTag(tag string) (*entity.Asset, error)
	GetForUpdate(id string) (*entity.Asset, error)
	UpdateStatus(id, status string) error
	UpdateLocation(id, locationID string) error
	Update(asset *entity.Asset) error
	List(status string, limit, offset int) ([]*entity.Asset, error)
}
