package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/application/maintenance"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/lifecycle"
)

// MaintenanceHandler maneja las peticiones HTTP del workflow de mantenimiento.
type MaintenanceHandler struct {
	uc *maintenance.UseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.UseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir orden de mantenimiento
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenOrderRequest  true  "asset_id, vendor, description, cost, broken"
// @Success      201   {object}  dto.MaintenanceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/maintenance-orders [post]
func (h *MaintenanceHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.OpenOrder(c.Context(), maintenance.OpenInput{
		AssetID:     in.AssetID,
		Vendor:      in.Vendor,
		Description: in.Description,
		Cost:        in.Cost,
		Broken:      in.Broken,
		Actor:       GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order, time.Now()))
}

// AdvanceStatus avanza una orden un paso en la cadena de estados.
func (h *MaintenanceHandler) AdvanceStatus(c *fiber.Ctx) error {
	var in dto.AdvanceOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.AdvanceStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order, time.Now()))
}

// GetByID obtiene una orden con días abiertos calculados.
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order, time.Now()))
}

// ListActive órdenes activas.
func (h *MaintenanceHandler) ListActive(c *fiber.Ctx) error {
	orders, err := h.uc.ListActive(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	out := make([]*dto.MaintenanceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, now))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

// ListByAsset historial de órdenes de un activo.
func (h *MaintenanceHandler) ListByAsset(c *fiber.Ctx) error {
	orders, err := h.uc.ListByAsset(c.Context(), c.Params("id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	out := make([]*dto.MaintenanceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, now))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

func toOrderResponse(o *entity.MaintenanceOrder, now time.Time) *dto.MaintenanceOrderResponse {
	return &dto.MaintenanceOrderResponse{
		ID:          o.ID,
		AssetID:     o.AssetID,
		Vendor:      o.Vendor,
		Description: o.Description,
		Cost:        o.Cost,
		Status:      o.Status,
		OpenedAt:    o.OpenedAt,
		CompletedAt: o.CompletedAt,
		DaysOpen:    lifecycle.DaysOpen(o, now),
	}
}
