package purchasing

import (
	"context"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// TxRunner abre una transacción que abarca la fila de la solicitud y el libro
// de stock del producto destino: el paso a DELIVERED y el movimiento IN son
// todo-o-nada.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		requestRepo repository.PurchaseRequestRepository,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
