package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInvalidQuantity       = errors.New("la cantidad debe ser mayor que cero")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrAssetNotAvailable     = errors.New("el activo no está disponible")
	ErrNoOpenCheckout        = errors.New("el activo no tiene préstamo abierto")
	ErrCheckoutAlreadyClosed = errors.New("el préstamo ya fue devuelto")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrInvalidLocation       = errors.New("ubicación inexistente o inactiva")
)
