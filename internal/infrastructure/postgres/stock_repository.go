package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un producto. Sin fila todavía = saldo cero.
func (r *StockRepo) Get(productID string) (*entity.Stock, error) {
	query := `SELECT product_id, quantity, updated_at FROM stock WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Serializa los read-check-write concurrentes del mismo producto.
func (r *StockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	// Garantiza que exista la fila a bloquear; sin efecto si ya existe.
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock (product_id, quantity, updated_at)
		VALUES ($1, 0, now())
		ON CONFLICT (product_id) DO NOTHING`, productID)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `SELECT product_id, quantity, updated_at FROM stock WHERE product_id = $1 FOR UPDATE`
	var s entity.Stock
	err = r.q.QueryRow(context.Background(), query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo de un producto.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListLowStock productos activos con saldo <= umbral mínimo. Productos sin
// fila de stock cuentan como saldo cero.
func (r *StockRepo) ListLowStock() ([]*repository.ProductStock, error) {
	query := `
		SELECT p.id, p.name, p.category, p.unit_measure, p.min_threshold, p.active, p.created_at, p.updated_at,
		       COALESCE(s.quantity, 0), COALESCE(s.updated_at, p.created_at)
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.active AND COALESCE(s.quantity, 0) <= p.min_threshold
		ORDER BY COALESCE(s.quantity, 0) - p.min_threshold`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var out []*repository.ProductStock
	for rows.Next() {
		var p entity.Product
		var s entity.Stock
		err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.UnitMeasure, &p.MinThreshold, &p.Active,
			&p.CreatedAt, &p.UpdatedAt, &s.Quantity, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		s.ProductID = p.ID
		out = append(out, &repository.ProductStock{Product: &p, Stock: &s})
	}
	return out, rows.Err()
}
