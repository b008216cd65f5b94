package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// UseCase es el motor del libro de stock: registra movimientos de forma
// transaccional (bloqueo de fila con SELECT FOR UPDATE y Commit/Rollback) y
// expone las lecturas derivadas (saldo actual, historial, stock bajo).
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
}

// NewUseCase construye el motor.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		movRepo:     movRepo,
	}
}

// MovementInput entrada para registrar un movimiento directo (IN/OUT/RETURN/LOSS).
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
	Notes     string
	Actor     string
}

// RegisterMovement valida, inicia una transacción, bloquea la fila de stock y
// aplica el movimiento. Para tipos de salida verifica saldo suficiente dentro
// de la misma transacción: dos OUT concurrentes contra el mismo producto no
// pueden pasar ambos la verificación con un saldo viejo.
func (uc *UseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsMovementType(input.Type) {
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

	direction := entity.MovementDirection(input.Type)
	now := time.Now()
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Direction: direction,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Notes:     input.Notes,
		Date:      now,
		CreatedAt: now,
		CreatedBy: input.Actor,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		return applyMovement(movRepo, stockRepo, mov, now)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// applyMovement bloquea la fila de stock, re-verifica el saldo y escribe
// asiento + saldo como unidad. Se usa tanto desde RegisterMovement como desde
// la entrega de compras (misma transacción del caller).
func applyMovement(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	mov *entity.StockMovement,
	now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(mov.ProductID)
	if err != nil {
		return err
	}
	newQty := stock.Quantity.Add(mov.SignedQuantity())
	if newQty.IsNegative() {
		return domain.ErrInsufficientStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	return movRepo.Create(mov)
}

// RegisterINInTx registra una entrada usando los repositorios del caller
// (misma transacción). Lo usa la entrega de solicitudes de compra para que
// el cambio de estado y el movimiento IN sean todo-o-nada.
func (uc *UseCase) RegisterINInTx(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productID string,
	quantity decimal.Decimal,
	notes, actor string,
	now time.Time,
) (*entity.StockMovement, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      entity.MovementTypeIN,
		Direction: 1,
		Quantity:  quantity,
		Notes:     notes,
		Date:      now,
		CreatedAt: now,
		CreatedBy: actor,
	}
	if err := applyMovement(movRepo, stockRepo, mov, now); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterAdjustment registra un ajuste por conteo físico. El delta con signo
// se calcula dentro de la transacción contra el saldo bloqueado, preservando
// la invariante saldo == Σ(direction * quantity). Delta cero no genera asiento.
func (uc *UseCase) RegisterAdjustment(ctx context.Context, productID string, countedQty decimal.Decimal, notes, actor string) (*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if countedQty.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		delta := countedQty.Sub(stock.Quantity)
		if delta.IsZero() {
			return nil
		}
		direction := 1
		if delta.IsNegative() {
			direction = -1
		}
		mov = &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: productID,
			Type:      entity.MovementTypeADJUSTMENT,
			Direction: direction,
			Quantity:  delta.Abs(),
			Notes:     notes,
			Date:      now,
			CreatedAt: now,
			CreatedBy: actor,
		}
		stock.Quantity = countedQty
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// GetCurrentStock devuelve el saldo derivado actual de un producto.
func (uc *UseCase) GetCurrentStock(ctx context.Context, productID string) (*entity.Stock, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.Get(productID)
}

// ListMovements historial de un producto, más recientes primero. Solo lectura,
// sin bloqueo.
func (uc *UseCase) ListMovements(ctx context.Context, productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return uc.movRepo.ListByProduct(productID, filter)
}

// ListLowStock productos con saldo menor o igual a su umbral mínimo.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]*repository.ProductStock, error) {
	return uc.stockRepo.ListLowStock()
}
