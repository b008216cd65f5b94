package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/domain"
)

// GetActor devuelve la referencia al actor provista por la capa llamante.
// La autenticación ya ocurrió fuera de este núcleo; aquí solo se propaga.
func GetActor(c *fiber.Ctx) string {
	return c.Get("X-User")
}

// errorStatus mapeo de errores de dominio a códigos HTTP. Ningún error se
// degrada silenciosamente: saldo insuficiente y transiciones inválidas son
// conflicto, validaciones son 400, lo desconocido es 500.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrAssetNotAvailable, fiber.StatusConflict, "ASSET_NOT_AVAILABLE"},
	{domain.ErrNoOpenCheckout, fiber.StatusConflict, "NO_OPEN_CHECKOUT"},
	{domain.ErrCheckoutAlreadyClosed, fiber.StatusConflict, "CHECKOUT_ALREADY_CLOSED"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrInvalidLocation, fiber.StatusBadRequest, "INVALID_LOCATION"},
}

// respondError responde un error de dominio con su código; 500 para el resto.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
