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

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

const requestColumns = `id, product_id, quantity, unit_measure, requester, status, created_at, updated_at, delivered_at`

func scanRequest(row pgx.Row) (*entity.PurchaseRequest, error) {
	var p entity.PurchaseRequest
	err := row.Scan(&p.ID, &p.ProductID, &p.Quantity, &p.UnitMeasure, &p.Requester,
		&p.Status, &p.CreatedAt, &p.UpdatedAt, &p.DeliveredAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una solicitud.
func (r *PurchaseRequestRepo) Create(request *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (id, product_id, quantity, unit_measure, requester, status, created_at, updated_at, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.ProductID, request.Quantity, request.UnitMeasure,
		request.Requester, request.Status, request.CreatedAt, request.UpdatedAt, request.DeliveredAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *PurchaseRequestRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests WHERE id = $1`
	p, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene la solicitud y bloquea su fila (SELECT FOR UPDATE).
// La entrega re-valida el estado contra esta fila, nunca contra el cliente.
func (r *PurchaseRequestRepo) GetForUpdate(id string) (*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests WHERE id = $1 FOR UPDATE`
	p, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request for update: %w", err)
	}
	return p, nil
}

// UpdateStatus escribe el estado (y delivered_at al entregar).
func (r *PurchaseRequestRepo) UpdateStatus(id, status string, deliveredAt *time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchase_requests SET status = $2, delivered_at = $3, updated_at = now() WHERE id = $1`,
		id, status, deliveredAt)
	if err != nil {
		return fmt.Errorf("update purchase request status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStatus solicitudes por estado (vacío = todas), más recientes primero.
func (r *PurchaseRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseRequest
	for rows.Next() {
		p, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
