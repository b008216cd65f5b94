package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/application/usecase"
)

// LocationHandler maneja las peticiones HTTP de ubicaciones.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create crea una ubicación.
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// List lista ubicaciones; ?active=true solo las activas.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	locations, err := h.uc.List(c.QueryBool("active", false), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(locations), "locations": locations})
}

// Deactivate desactiva una ubicación.
func (h *LocationHandler) Deactivate(c *fiber.Ctx) error {
	loc, err := h.uc.Deactivate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(loc)
}
