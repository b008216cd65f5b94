package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-obra-api/internal/application/asset"
	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/lifecycle"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// UseCase workflow de mantenimiento: abre órdenes (AVAILABLE → MAINTENANCE) y
// las avanza por la cadena BROKEN → OPEN → WAITING_PAYMENT → COMPLETED.
// Al completar, devuelve el activo a AVAILABLE en la misma transacción.
type UseCase struct {
	txRunner  TxRunner
	lifecycle *asset.LifecycleManager
	orderRepo repository.MaintenanceOrderRepository
}

// NewUseCase construye el workflow.
func NewUseCase(txRunner TxRunner, lifecycle *asset.LifecycleManager, orderRepo repository.MaintenanceOrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, lifecycle: lifecycle, orderRepo: orderRepo}
}

// OpenInput entrada para abrir una orden.
type OpenInput struct {
	AssetID     string
	Vendor      string
	Description string
	Cost        decimal.Decimal
	Broken      bool // true abre en BROKEN (diagnóstico pendiente); false en OPEN
	Actor       string
}

// OpenOrder crea la orden y pasa el activo a MAINTENANCE de forma atómica.
// Un activo IN_USE o ya en mantenimiento falla con ErrAssetNotAvailable, así
// que nunca hay dos órdenes activas sobre el mismo activo.
func (uc *UseCase) OpenOrder(ctx context.Context, input OpenInput) (*entity.MaintenanceOrder, error) {
	if input.AssetID == "" || input.Vendor == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	status := entity.MaintenanceStatusOpen
	if input.Broken {
		status = entity.MaintenanceStatusBroken
	}
	now := time.Now()
	order := &entity.MaintenanceOrder{
		ID:          uuid.New().String(),
		AssetID:     input.AssetID,
		Vendor:      input.Vendor,
		Description: input.Description,
		Cost:        input.Cost,
		Status:      status,
		OpenedAt:    now,
		CreatedAt:   now,
		CreatedBy:   input.Actor,
	}
	err := uc.txRunner.RunMaintenance(ctx, func(
		assetRepo repository.AssetRepository,
		orderRepo repository.MaintenanceOrderRepository,
	) error {
		if _, err := uc.lifecycle.MarkMaintenance(assetRepo, input.AssetID); err != nil {
			return err
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AdvanceStatus avanza la orden un paso en la cadena. Retrocesos y saltos se
// rechazan con ErrInvalidTransition. Al llegar a COMPLETED dispara
// MarkAvailable en la misma transacción.
func (uc *UseCase) AdvanceStatus(ctx context.Context, orderID, newStatus string) (*entity.MaintenanceOrder, error) {
	var result *entity.MaintenanceOrder
	err := uc.txRunner.RunMaintenance(ctx, func(
		assetRepo repository.AssetRepository,
		orderRepo repository.MaintenanceOrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !lifecycle.CanMaintenanceAdvance(order.Status, newStatus) {
			return domain.ErrInvalidTransition
		}
		var completedAt *time.Time
		if newStatus == entity.MaintenanceStatusCompleted {
			now := time.Now()
			completedAt = &now
		}
		if err := orderRepo.UpdateStatus(order.ID, newStatus, completedAt); err != nil {
			return err
		}
		if newStatus == entity.MaintenanceStatusCompleted {
			if _, err := uc.lifecycle.MarkAvailable(assetRepo, order.AssetID); err != nil {
				return err
			}
		}
		order.Status = newStatus
		order.CompletedAt = completedAt
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetOrder lectura de una orden con días abiertos calculados por el caller.
func (uc *UseCase) GetOrder(ctx context.Context, orderID string) (*entity.MaintenanceOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListActive órdenes que siguen bloqueando activos.
func (uc *UseCase) ListActive(ctx context.Context, limit, offset int) ([]*entity.MaintenanceOrder, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.orderRepo.ListActive(limit, offset)
}

// ListByAsset historial de órdenes de un activo.
func (uc *UseCase) ListByAsset(ctx context.Context, assetID string, limit, offset int) ([]*entity.MaintenanceOrder, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.orderRepo.ListByAsset(assetID, limit, offset)
}
