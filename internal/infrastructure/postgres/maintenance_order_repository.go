package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

var _ repository.MaintenanceOrderRepository = (*MaintenanceOrderRepo)(nil)

// MaintenanceOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaintenanceOrderRepo struct {
	q Querier
}

// NewMaintenanceOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceOrderRepository(q Querier) *MaintenanceOrderRepo {
	return &MaintenanceOrderRepo{q: q}
}

const orderColumns = `id, asset_id, vendor, description, cost, status, opened_at, completed_at, created_at, created_by`

func scanOrder(row pgx.Row) (*entity.MaintenanceOrder, error) {
	var o entity.MaintenanceOrder
	var createdBy *string
	err := row.Scan(&o.ID, &o.AssetID, &o.Vendor, &o.Description, &o.Cost,
		&o.Status, &o.OpenedAt, &o.CompletedAt, &o.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		o.CreatedBy = *createdBy
	}
	return &o, nil
}

// Create persiste una orden. El índice único parcial sobre (asset_id) WHERE
// status <> 'COMPLETED' respalda la invariante de una sola orden activa.
func (r *MaintenanceOrderRepo) Create(order *entity.MaintenanceOrder) error {
	query := `
		INSERT INTO maintenance_orders (id, asset_id, vendor, description, cost, status, opened_at, completed_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if order.CreatedBy != "" {
		createdBy = &order.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.AssetID, order.Vendor, order.Description, order.Cost,
		order.Status, order.OpenedAt, order.CompletedAt, order.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAssetNotAvailable
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert maintenance order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *MaintenanceOrderRepo) GetByID(id string) (*entity.MaintenanceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM maintenance_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la orden y bloquea su fila (SELECT FOR UPDATE).
func (r *MaintenanceOrderRepo) GetForUpdate(id string) (*entity.MaintenanceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM maintenance_orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance order for update: %w", err)
	}
	return o, nil
}

// GetActiveByAsset devuelve la orden activa (no COMPLETED) del activo, o nil.
func (r *MaintenanceOrderRepo) GetActiveByAsset(assetID string) (*entity.MaintenanceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM maintenance_orders
		WHERE asset_id = $1 AND status <> 'COMPLETED'`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active maintenance order: %w", err)
	}
	return o, nil
}

// UpdateStatus escribe el estado de la orden (y completed_at al cerrar).
func (r *MaintenanceOrderRepo) UpdateStatus(id, status string, completedAt *time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE maintenance_orders SET status = $2, completed_at = $3 WHERE id = $1`, id, status, completedAt)
	if err != nil {
		return fmt.Errorf("update maintenance order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive órdenes que siguen bloqueando activos, más antiguas primero.
func (r *MaintenanceOrderRepo) ListActive(limit, offset int) ([]*entity.MaintenanceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM maintenance_orders
		WHERE status <> 'COMPLETED' ORDER BY opened_at LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByAsset historial de órdenes de un activo, más recientes primero.
func (r *MaintenanceOrderRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.MaintenanceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM maintenance_orders
		WHERE asset_id = $1 ORDER BY opened_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, assetID, limit, offset)
}

func (r *MaintenanceOrderRepo) list(query string, args ...any) ([]*entity.MaintenanceOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.MaintenanceOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
