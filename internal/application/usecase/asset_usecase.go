package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// AssetUseCase registro de activos: alta y lecturas. El estado nunca se
// escribe desde aquí; eso es del Lifecycle Manager.
type AssetUseCase struct {
	repo         repository.AssetRepository
	locationRepo repository.LocationRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(repo repository.AssetRepository, locationRepo repository.LocationRepository) *AssetUseCase {
	return &AssetUseCase{repo: repo, locationRepo: locationRepo}
}

// Create da de alta un activo en AVAILABLE. El tag debe ser único y la
// ubicación inicial debe existir y estar activa.
func (uc *AssetUseCase) Create(in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if in.Name == "" || in.Tag == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil || !loc.Active {
		return nil, domain.ErrInvalidLocation
	}
	now := time.Now()
	asset := &entity.Asset{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Tag:           in.Tag,
		Brand:         in.Brand,
		LocationID:    in.LocationID,
		Status:        entity.AssetStatusAvailable,
		PurchasedAt:   in.PurchasedAt,
		PurchasePrice: in.PurchasePrice,
		Supplier:      in.Supplier,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// GetByID obtiene un activo por ID.
func (uc *AssetUseCase) GetByID(id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return toAssetResponse(asset), nil
}

// GetByTag obtiene un activo por su tag (flujo de escaneo).
func (uc *AssetUseCase) GetByTag(tag string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByTag(tag)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return toAssetResponse(asset), nil
}

// List lista activos, opcionalmente filtrados por estado.
func (uc *AssetUseCase) List(status string, limit, offset int) ([]*dto.AssetResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	assets, err := uc.repo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}
	return out, nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:            a.ID,
		Name:          a.Name,
		Tag:           a.Tag,
		Brand:         a.Brand,
		LocationID:    a.LocationID,
		Status:        a.Status,
		PurchasedAt:   a.PurchasedAt,
		PurchasePrice: a.PurchasePrice,
		Supplier:      a.Supplier,
		CreatedAt:     a.CreatedAt,
	}
}
