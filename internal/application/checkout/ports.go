package checkout

import (
	"context"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// TxRunner abre una transacción con los repositorios de activos y préstamos
// atados a ella: el alta del préstamo y la transición del activo son
// todo-o-nada (sin activos IN_USE huérfanos ni préstamos sin transición).
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		checkoutRepo repository.CheckoutRepository,
	) error) error
}
