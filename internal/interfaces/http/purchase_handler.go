package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/application/purchasing"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// PurchaseHandler maneja las peticiones HTTP del pipeline de compras.
type PurchaseHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create crea una solicitud de compra en PENDING. El solicitante es el actor.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), purchasing.CreateInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitMeasure: in.UnitMeasure,
		Requester:   GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(req))
}

// UpdateStatus godoc
// @Summary      Avanzar una solicitud de compra por el pipeline
// @Description  El paso a DELIVERED registra el movimiento IN en la misma transacción.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdatePurchaseStatusRequest  true  "status"
// @Success      200   {object}  dto.PurchaseRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/status [patch]
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseResponse(req))
}

// GetByID obtiene una solicitud.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseResponse(req))
}

// List solicitudes, con filtro opcional por estado.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	requests, err := h.uc.ListByStatus(c.Context(), c.Query("status"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PurchaseRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toPurchaseResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "requests": out})
}

func toPurchaseResponse(r *entity.PurchaseRequest) *dto.PurchaseRequestResponse {
	return &dto.PurchaseRequestResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		UnitMeasure: r.UnitMeasure,
		Requester:   r.Requester,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		DeliveredAt: r.DeliveredAt,
	}
}
