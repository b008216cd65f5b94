package repository

import (
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// ProductStock par producto + saldo para las consultas de stock bajo.
type ProductStock struct {
	Product *entity.Product
	Stock   *entity.Stock
}

// StockRepository puerto del saldo materializado por producto.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar el
// read-check-write por producto.
type StockRepository interface {
	Get(productID string) (*entity.Stock, error)
	GetForUpdate(productID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListLowStock() ([]*ProductStock, error)
}
