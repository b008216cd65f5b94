package asset

import (
	"context"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con el repositorio
// de activos atado a esa tx. Lo usan las operaciones del Lifecycle Manager
// que tienen transacción propia (traslado de ubicación, baja).
type TxRunner interface {
	RunAsset(ctx context.Context, fn func(assetRepo repository.AssetRepository) error) error
}
