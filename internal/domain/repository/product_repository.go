package repository

import (
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock no se toca aquí: vive en StockRepository y solo lo muta el motor.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Deactivate(id string) error
}
