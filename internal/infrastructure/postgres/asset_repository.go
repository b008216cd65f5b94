package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación de AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, name, tag, brand, location_id, status, purchased_at, purchase_price, supplier, created_at, updated_at`

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(&a.ID, &a.Name, &a.Tag, &a.Brand, &a.LocationID, &a.Status,
		&a.PurchasedAt, &a.PurchasePrice, &a.Supplier, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create da de alta un activo. Tag duplicado devuelve ErrDuplicate.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (id, name, tag, brand, location_id, status, purchased_at, purchase_price, supplier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.Name, asset.Tag, asset.Brand, asset.LocationID, asset.Status,
		asset.PurchasedAt, asset.PurchasePrice, asset.Supplier, asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidLocation
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	a, err := scanAsset(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// GetByTag obtiene un activo por su tag único.
func (r *AssetRepo) GetByTag(tag string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE tag = $1`
	a, err := scanAsset(r.q.QueryRow(context.Background(), query, tag))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset by tag: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene el activo y bloquea su fila (SELECT FOR UPDATE).
// Serializa las transiciones de estado concurrentes del mismo activo.
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 FOR UPDATE`
	a, err := scanAsset(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset for update: %w", err)
	}
	return a, nil
}

// UpdateStatus escribe el estado. Solo lo invoca el Lifecycle Manager.
func (r *AssetRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE assets SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update asset status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLocation escribe la ubicación (ortogonal al estado).
func (r *AssetRepo) UpdateLocation(id, locationID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE assets SET location_id = $2, updated_at = now() WHERE id = $1`, id, locationID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidLocation
		}
		return fmt.Errorf("update asset location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza los campos descriptivos del activo (no estado ni ubicación).
func (r *AssetRepo) Update(asset *entity.Asset) error {
	query := `
		UPDATE assets SET name = $2, brand = $3, purchased_at = $4, purchase_price = $5, supplier = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.Name, asset.Brand, asset.PurchasedAt, asset.PurchasePrice, asset.Supplier, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista activos, opcionalmente filtrados por estado.
func (r *AssetRepo) List(status string, limit, offset int) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
