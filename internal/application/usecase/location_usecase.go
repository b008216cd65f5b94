package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones (obras y bodegas).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación activa.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Deactivate desactiva una ubicación; los activos que la referencian se
// trasladan con TransferLocation, nunca se borra la ubicación.
func (uc *LocationUseCase) Deactivate(id string) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	loc.Active = false
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// List lista ubicaciones.
func (uc *LocationUseCase) List(onlyActive bool, limit, offset int) ([]*dto.LocationResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	locations, err := uc.repo.List(onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{ID: l.ID, Name: l.Name, Active: l.Active}
}
