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

var _ repository.CheckoutRepository = (*CheckoutRepo)(nil)

// CheckoutRepo implementación de CheckoutRepository sobre PostgreSQL (usable con pool o tx).
type CheckoutRepo struct {
	q Querier
}

// NewCheckoutRepository construye el adaptador de préstamos. Pasar pool o tx (Querier).
func NewCheckoutRepository(q Querier) *CheckoutRepo {
	return &CheckoutRepo{q: q}
}

const checkoutColumns = `id, asset_id, worker_name, checked_out_at, expected_return, returned_at, notes, created_at, created_by`

func scanCheckout(row pgx.Row) (*entity.Checkout, error) {
	var c entity.Checkout
	var createdBy *string
	err := row.Scan(&c.ID, &c.AssetID, &c.WorkerName, &c.CheckedOutAt,
		&c.ExpectedReturn, &c.ReturnedAt, &c.Notes, &c.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		c.CreatedBy = *createdBy
	}
	return &c, nil
}

// Create persiste un préstamo. El índice único parcial sobre (asset_id) WHERE
// returned_at IS NULL respalda la invariante de un solo préstamo abierto.
func (r *CheckoutRepo) Create(checkout *entity.Checkout) error {
	query := `
		INSERT INTO checkouts (id, asset_id, worker_name, checked_out_at, expected_return, returned_at, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if checkout.CreatedBy != "" {
		createdBy = &checkout.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		checkout.ID, checkout.AssetID, checkout.WorkerName, checkout.CheckedOutAt,
		checkout.ExpectedReturn, checkout.ReturnedAt, checkout.Notes, checkout.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAssetNotAvailable
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert checkout: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *CheckoutRepo) GetByID(id string) (*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE id = $1`
	c, err := scanCheckout(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checkout: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene el préstamo y bloquea su fila (SELECT FOR UPDATE).
func (r *CheckoutRepo) GetForUpdate(id string) (*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE id = $1 FOR UPDATE`
	c, err := scanCheckout(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checkout for update: %w", err)
	}
	return c, nil
}

// GetOpenByAsset devuelve el préstamo abierto de un activo, o nil.
func (r *CheckoutRepo) GetOpenByAsset(assetID string) (*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE asset_id = $1 AND returned_at IS NULL`
	c, err := scanCheckout(r.q.QueryRow(context.Background(), query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open checkout: %w", err)
	}
	return c, nil
}

// Close sella returned_at de un préstamo abierto; una sola vez.
func (r *CheckoutRepo) Close(id string, returnedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE checkouts SET returned_at = $2 WHERE id = $1 AND returned_at IS NULL`, id, returnedAt)
	if err != nil {
		return fmt.Errorf("close checkout: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCheckoutAlreadyClosed
	}
	return nil
}

// ListOpen préstamos sin devolver, más antiguos primero.
func (r *CheckoutRepo) ListOpen(limit, offset int) ([]*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE returned_at IS NULL
		ORDER BY checked_out_at LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByAsset historial de préstamos de un activo, más recientes primero.
func (r *CheckoutRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE asset_id = $1
		ORDER BY checked_out_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, assetID, limit, offset)
}

func (r *CheckoutRepo) list(query string, args ...any) ([]*entity.Checkout, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checkouts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Checkout
	for rows.Next() {
		c, err := scanCheckout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan checkout: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
