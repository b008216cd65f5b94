package maintenance

import (
	"context"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// TxRunner abre una transacción con los repositorios de activos y órdenes
// atados a ella: alta/avance de la orden y transición del activo, todo-o-nada.
type TxRunner interface {
	RunMaintenance(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		orderRepo repository.MaintenanceOrderRepository,
	) error) error
}
