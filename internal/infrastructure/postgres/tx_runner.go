package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-obra-api/internal/application/asset"
	"github.com/jhoicas/Almacen-obra-api/internal/application/checkout"
	"github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-obra-api/internal/application/maintenance"
	"github.com/jhoicas/Almacen-obra-api/internal/application/purchasing"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de cada workflow.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ asset.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*TxRunner)(nil)
var _ maintenance.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, entregando
// repositorios atados a la tx. Cada workflow tiene su Run con los repos que
// abarca su unidad atómica.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del motor de stock: asiento + saldo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewStockMovementRepository(q), NewStockRepository(q))
	})
}

// RunAsset transacción de operaciones sueltas sobre el activo (traslado, baja).
func (r *TxRunner) RunAsset(ctx context.Context, fn func(assetRepo repository.AssetRepository) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewAssetRepository(q))
	})
}

// RunCheckout transacción del workflow de préstamos: préstamo + estado del activo.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	checkoutRepo repository.CheckoutRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewAssetRepository(q), NewCheckoutRepository(q))
	})
}

// RunMaintenance transacción del workflow de mantenimiento: orden + estado del activo.
func (r *TxRunner) RunMaintenance(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	orderRepo repository.MaintenanceOrderRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewAssetRepository(q), NewMaintenanceOrderRepository(q))
	})
}

// RunPurchase transacción de entrega de compras: fila de la solicitud + libro
// de stock del producto destino.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	requestRepo repository.PurchaseRequestRepository,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewPurchaseRequestRepository(q), NewStockMovementRepository(q), NewStockRepository(q))
	})
}
