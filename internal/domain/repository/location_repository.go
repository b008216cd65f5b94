package repository

import (
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// LocationRepository puerto de ubicaciones (obras y bodegas).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(onlyActive bool, limit, offset int) ([]*entity.Location, error)
}
