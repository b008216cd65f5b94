package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/lifecycle"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// UseCase pipeline de solicitudes de compra. La entrega (DELIVERED) emite el
// movimiento IN a través del motor de stock dentro de la misma transacción:
// si el movimiento falla, el cambio de estado se revierte con él.
type UseCase struct {
	txRunner    TxRunner
	ledgerUC    *ledger.UseCase
	productRepo repository.ProductRepository
	requestRepo repository.PurchaseRequestRepository
}

// NewUseCase construye el workflow.
func NewUseCase(
	txRunner TxRunner,
	ledgerUC *ledger.UseCase,
	productRepo repository.ProductRepository,
	requestRepo repository.PurchaseRequestRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		ledgerUC:    ledgerUC,
		productRepo: productRepo,
		requestRepo: requestRepo,
	}
}

// CreateInput entrada para crear una solicitud.
type CreateInput struct {
	ProductID   string
	Quantity    decimal.Decimal
	UnitMeasure string
	Requester   string
}

// Create crea la solicitud en PENDING.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.PurchaseRequest, error) {
	if input.ProductID == "" || input.Requester == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	unit := input.UnitMeasure
	if unit == "" {
		unit = product.UnitMeasure
	}
	now := time.Now()
	req := &entity.PurchaseRequest{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		UnitMeasure: unit,
		Requester:   input.Requester,
		Status:      entity.PurchaseStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.requestRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus avanza la solicitud por el pipeline. El estado se re-valida
// contra la fila bloqueada, nunca contra lo que afirme el cliente: una
// solicitud ya DELIVERED no puede volver a entregar.
func (uc *UseCase) UpdateStatus(ctx context.Context, requestID, newStatus, actor string) (*entity.PurchaseRequest, error) {
	var result *entity.PurchaseRequest
	err := uc.txRunner.RunPurchase(ctx, func(
		requestRepo repository.PurchaseRequestRepository,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !lifecycle.CanPurchaseTransition(req.Status, newStatus) {
			return domain.ErrInvalidTransition
		}
		var deliveredAt *time.Time
		if newStatus == entity.PurchaseStatusDelivered {
			now := time.Now()
			deliveredAt = &now
			// Exactamente un IN por entrega, en la misma transacción.
			note := fmt.Sprintf("entrega de solicitud de compra #%s", req.ID)
			if _, err := uc.ledgerUC.RegisterINInTx(movRepo, stockRepo, req.ProductID, req.Quantity, note, actor, now); err != nil {
				return err
			}
		}
		if err := requestRepo.UpdateStatus(req.ID, newStatus, deliveredAt); err != nil {
			return err
		}
		req.Status = newStatus
		req.DeliveredAt = deliveredAt
		req.UpdatedAt = time.Now()
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get lectura de una solicitud.
func (uc *UseCase) Get(ctx context.Context, requestID string) (*entity.PurchaseRequest, error) {
	req, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// ListByStatus solicitudes por estado (vacío = todas).
func (uc *UseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.requestRepo.ListByStatus(status, limit, offset)
}
