package repository

import (
	"time"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// PurchaseRequestRepository puerto de solicitudes de compra.
type PurchaseRequestRepository interface {
	Create(request *entity.PurchaseRequest) error
	GetByID(id string) (*entity.PurchaseRequest, error)
	GetForUpdate(id string) (*entity.PurchaseRequest, error)
	UpdateStatus(id, status string, deliveredAt *time.Time) error
	ListByStatus(status string, limit, offset int) ([]*entity.PurchaseRequest, error)
}
