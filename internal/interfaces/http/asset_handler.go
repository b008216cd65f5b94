package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/asset"
	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/application/usecase"
)

// AssetHandler maneja las peticiones HTTP del registro de activos y las
// operaciones del Lifecycle Manager (traslado, baja).
type AssetHandler struct {
	uc        *usecase.AssetUseCase
	lifecycle *asset.LifecycleManager
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase, lifecycle *asset.LifecycleManager) *AssetHandler {
	return &AssetHandler{uc: uc, lifecycle: lifecycle}
}

// Create da de alta un activo.
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GetByID obtiene un activo.
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	a, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

// GetByTag obtiene un activo por su tag (flujo de escaneo QR).
func (h *AssetHandler) GetByTag(c *fiber.Ctx) error {
	a, err := h.uc.GetByTag(c.Params("tag"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

// List lista activos, con filtro opcional por estado.
func (h *AssetHandler) List(c *fiber.Ctx) error {
	assets, err := h.uc.List(c.Query("status"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(assets), "assets": assets})
}

// TransferLocation godoc
// @Summary      Trasladar un activo a otra ubicación
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.TransferLocationRequest  true  "location_id"
// @Success      200   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/location [patch]
func (h *AssetHandler) TransferLocation(c *fiber.Ctx) error {
	var in dto.TransferLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.lifecycle.TransferLocation(c.Context(), c.Params("id"), in.LocationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": a.ID, "location_id": a.LocationID, "status": a.Status})
}

// Discard baja definitiva del activo (estado terminal DISCARDED).
func (h *AssetHandler) Discard(c *fiber.Ctx) error {
	a, err := h.lifecycle.Discard(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": a.ID, "status": a.Status})
}
