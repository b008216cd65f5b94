package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/checkout"
	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/lifecycle"
)

// CheckoutHandler maneja las peticiones HTTP del workflow de préstamos.
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Create godoc
// @Summary      Prestar un activo a un trabajador
// @Tags         checkouts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCheckoutRequest  true  "asset_id, worker_name, expected_return, notes"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkouts [post]
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	co, err := h.uc.CreateCheckout(c.Context(), checkout.CreateInput{
		AssetID:        in.AssetID,
		WorkerName:     in.WorkerName,
		ExpectedReturn: in.ExpectedReturn,
		Notes:          in.Notes,
		Actor:          GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCheckoutResponse(co, time.Now()))
}

// Return cierra un préstamo por su ID.
func (h *CheckoutHandler) Return(c *fiber.Ctx) error {
	co, err := h.uc.ReturnAsset(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckoutResponse(co, time.Now()))
}

// ReturnByAsset cierra el préstamo abierto de un activo (flujo de escaneo).
func (h *CheckoutHandler) ReturnByAsset(c *fiber.Ctx) error {
	co, err := h.uc.ReturnByAsset(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckoutResponse(co, time.Now()))
}

// ListOpen préstamos abiertos, con bandera overdue calculada en lectura.
func (h *CheckoutHandler) ListOpen(c *fiber.Ctx) error {
	checkouts, err := h.uc.ListOpen(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	out := make([]*dto.CheckoutResponse, 0, len(checkouts))
	for _, co := range checkouts {
		out = append(out, toCheckoutResponse(co, now))
	}
	return c.JSON(fiber.Map{"total": len(out), "checkouts": out})
}

// ListByAsset historial de préstamos de un activo.
func (h *CheckoutHandler) ListByAsset(c *fiber.Ctx) error {
	checkouts, err := h.uc.ListByAsset(c.Context(), c.Params("id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	out := make([]*dto.CheckoutResponse, 0, len(checkouts))
	for _, co := range checkouts {
		out = append(out, toCheckoutResponse(co, now))
	}
	return c.JSON(fiber.Map{"total": len(out), "checkouts": out})
}

func toCheckoutResponse(co *entity.Checkout, now time.Time) *dto.CheckoutResponse {
	return &dto.CheckoutResponse{
		ID:             co.ID,
		AssetID:        co.AssetID,
		WorkerName:     co.WorkerName,
		CheckedOutAt:   co.CheckedOutAt,
		ExpectedReturn: co.ExpectedReturn,
		ReturnedAt:     co.ReturnedAt,
		Notes:          co.Notes,
		Overdue:        lifecycle.IsOverdue(co, now),
	}
}
