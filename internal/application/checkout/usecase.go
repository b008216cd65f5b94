package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-obra-api/internal/application/asset"
	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// UseCase workflow de préstamos: crea y cierra préstamos, disparando las
// transiciones AVAILABLE↔IN_USE del Lifecycle Manager en la misma transacción.
type UseCase struct {
	txRunner     TxRunner
	lifecycle    *asset.LifecycleManager
	checkoutRepo repository.CheckoutRepository
}

// NewUseCase construye el workflow.
func NewUseCase(txRunner TxRunner, lifecycle *asset.LifecycleManager, checkoutRepo repository.CheckoutRepository) *UseCase {
	return &UseCase{txRunner: txRunner, lifecycle: lifecycle, checkoutRepo: checkoutRepo}
}

// CreateInput entrada para crear un préstamo.
type CreateInput struct {
	AssetID        string
	WorkerName     string
	ExpectedReturn *time.Time
	Notes          string
	Actor          string
}

// CreateCheckout crea el préstamo y pasa el activo a IN_USE de forma atómica.
// El Lifecycle Manager valida AVAILABLE con la fila del activo bloqueada, así
// que un segundo préstamo concurrente sobre el mismo activo falla con
// ErrAssetNotAvailable.
func (uc *UseCase) CreateCheckout(ctx context.Context, input CreateInput) (*entity.Checkout, error) {
	if input.AssetID == "" || input.WorkerName == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	co := &entity.Checkout{
		ID:             uuid.New().String(),
		AssetID:        input.AssetID,
		WorkerName:     input.WorkerName,
		CheckedOutAt:   now,
		ExpectedReturn: input.ExpectedReturn,
		Notes:          input.Notes,
		CreatedAt:      now,
		CreatedBy:      input.Actor,
	}
	err := uc.txRunner.RunCheckout(ctx, func(
		assetRepo repository.AssetRepository,
		checkoutRepo repository.CheckoutRepository,
	) error {
		if _, err := uc.lifecycle.MarkInUse(assetRepo, input.AssetID); err != nil {
			return err
		}
		return checkoutRepo.Create(co)
	})
	if err != nil {
		return nil, err
	}
	return co, nil
}

// ReturnAsset sella returned_at y devuelve el activo a AVAILABLE, todo en una
// transacción. Un préstamo ya cerrado falla con ErrCheckoutAlreadyClosed.
func (uc *UseCase) ReturnAsset(ctx context.Context, checkoutID string) (*entity.Checkout, error) {
	var result *entity.Checkout
	err := uc.txRunner.RunCheckout(ctx, func(
		assetRepo repository.AssetRepository,
		checkoutRepo repository.CheckoutRepository,
	) error {
		co, err := checkoutRepo.GetForUpdate(checkoutID)
		if err != nil {
			return err
		}
		if co == nil {
			return domain.ErrNotFound
		}
		if !co.IsOpen() {
			return domain.ErrCheckoutAlreadyClosed
		}
		now := time.Now()
		if err := checkoutRepo.Close(co.ID, now); err != nil {
			return err
		}
		if _, err := uc.lifecycle.MarkAvailable(assetRepo, co.AssetID); err != nil {
			return err
		}
		co.ReturnedAt = &now
		result = co
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReturnByAsset cierra el préstamo abierto de un activo (flujo de escaneo QR,
// donde se conoce el activo y no el préstamo). Sin préstamo abierto falla con
// ErrNoOpenCheckout.
func (uc *UseCase) ReturnByAsset(ctx context.Context, assetID string) (*entity.Checkout, error) {
	var result *entity.Checkout
	err := uc.txRunner.RunCheckout(ctx, func(
		assetRepo repository.AssetRepository,
		checkoutRepo repository.CheckoutRepository,
	) error {
		// Bloquear primero el activo serializa contra CreateCheckout.
		a, err := assetRepo.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		co, err := checkoutRepo.GetOpenByAsset(assetID)
		if err != nil {
			return err
		}
		if co == nil {
			return domain.ErrNoOpenCheckout
		}
		now := time.Now()
		if err := checkoutRepo.Close(co.ID, now); err != nil {
			return err
		}
		if _, err := uc.lifecycle.MarkAvailable(assetRepo, assetID); err != nil {
			return err
		}
		co.ReturnedAt = &now
		result = co
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListOpen préstamos sin devolver, para el tablero de la capa llamante.
func (uc *UseCase) ListOpen(ctx context.Context, limit, offset int) ([]*entity.Checkout, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.checkoutRepo.ListOpen(limit, offset)
}

// ListByAsset historial de préstamos de un activo.
func (uc *UseCase) ListByAsset(ctx context.Context, assetID string, limit, offset int) ([]*entity.Checkout, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.checkoutRepo.ListByAsset(assetID, limit, offset)
}
