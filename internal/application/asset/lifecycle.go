package asset

import (
	"context"

	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/lifecycle"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// LifecycleManager es el dueño exclusivo del campo status de los activos.
// Los workflows de préstamo y mantenimiento lo invocan como último paso de su
// propia transacción (métodos Mark*); el traslado de ubicación y la baja
// tienen transacción propia.
type LifecycleManager struct {
	txRunner     TxRunner
	assetRepo    repository.AssetRepository
	locationRepo repository.LocationRepository
	checkoutRepo repository.CheckoutRepository
	orderRepo    repository.MaintenanceOrderRepository
}

// NewLifecycleManager construye el manager.
func NewLifecycleManager(
	txRunner TxRunner,
	assetRepo repository.AssetRepository,
	locationRepo repository.LocationRepository,
	checkoutRepo repository.CheckoutRepository,
	orderRepo repository.MaintenanceOrderRepository,
) *LifecycleManager {
	return &LifecycleManager{
		txRunner:     txRunner,
		assetRepo:    assetRepo,
		locationRepo: locationRepo,
		checkoutRepo: checkoutRepo,
		orderRepo:    orderRepo,
	}
}

// transition bloquea la fila del activo, valida el cambio contra la tabla y
// escribe el nuevo estado. Serializa transiciones concurrentes por activo.
func transition(assetRepo repository.AssetRepository, assetID, to string) (*entity.Asset, error) {
	a, err := assetRepo.GetForUpdate(assetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !lifecycle.CanAssetTransition(a.Status, to) {
		if to == entity.AssetStatusInUse || to == entity.AssetStatusMaintenance {
			return nil, domain.ErrAssetNotAvailable
		}
		return nil, domain.ErrInvalidTransition
	}
	if err := assetRepo.UpdateStatus(assetID, to); err != nil {
		return nil, err
	}
	a.Status = to
	return a, nil
}

// MarkInUse AVAILABLE → IN_USE sobre los repos de la transacción del caller
// (workflow de préstamos). Falla con ErrAssetNotAvailable desde otro estado.
func (m *LifecycleManager) MarkInUse(assetRepo repository.AssetRepository, assetID string) (*entity.Asset, error) {
	return transition(assetRepo, assetID, entity.AssetStatusInUse)
}

// MarkAvailable IN_USE/MAINTENANCE → AVAILABLE sobre la transacción del caller.
func (m *LifecycleManager) MarkAvailable(assetRepo repository.AssetRepository, assetID string) (*entity.Asset, error) {
	return transition(assetRepo, assetID, entity.AssetStatusAvailable)
}

// MarkMaintenance AVAILABLE → MAINTENANCE sobre la transacción del caller
// (workflow de mantenimiento). Un activo IN_USE o ya en MAINTENANCE falla.
func (m *LifecycleManager) MarkMaintenance(assetRepo repository.AssetRepository, assetID string) (*entity.Asset, error) {
	return transition(assetRepo, assetID, entity.AssetStatusMaintenance)
}

// Discard da de baja definitiva un activo (estado terminal). Se rechaza si
// queda un préstamo abierto o una orden de mantenimiento activa.
func (m *LifecycleManager) Discard(ctx context.Context, assetID string) (*entity.Asset, error) {
	var result *entity.Asset
	err := m.txRunner.RunAsset(ctx, func(assetRepo repository.AssetRepository) error {
		a, err := assetRepo.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.Status == entity.AssetStatusDiscarded {
			return domain.ErrInvalidTransition
		}
		// Con la fila del activo bloqueada nadie puede abrir préstamos ni
		// órdenes en paralelo; estas lecturas son consistentes.
		open, err := m.checkoutRepo.GetOpenByAsset(assetID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrConflict
		}
		active, err := m.orderRepo.GetActiveByAsset(assetID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrConflict
		}
		if err := assetRepo.UpdateStatus(assetID, entity.AssetStatusDiscarded); err != nil {
			return err
		}
		a.Status = entity.AssetStatusDiscarded
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TransferLocation mueve el activo a otra ubicación. Ortogonal al estado:
// permitido en cualquier estado salvo DISCARDED. La ubicación destino debe
// existir y estar activa.
func (m *LifecycleManager) TransferLocation(ctx context.Context, assetID, locationID string) (*entity.Asset, error) {
	loc, err := m.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil || !loc.Active {
		return nil, domain.ErrInvalidLocation
	}

	var result *entity.Asset
	err = m.txRunner.RunAsset(ctx, func(assetRepo repository.AssetRepository) error {
		a, err := assetRepo.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.Status == entity.AssetStatusDiscarded {
			return domain.ErrInvalidTransition
		}
		if err := assetRepo.UpdateLocation(assetID, locationID); err != nil {
			return err
		}
		a.LocationID = locationID
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get lectura directa del activo (estado y ubicación publicados).
func (m *LifecycleManager) Get(ctx context.Context, assetID string) (*entity.Asset, error) {
	a, err := m.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}
