package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/dto"
	"github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del motor de stock.
type InventoryHandler struct {
	uc *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (IN/OUT/RETURN/LOSS), quantity, unit_price, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterMovement(c.Context(), ledger.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Notes:     in.Notes,
		Actor:     GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste por conteo físico
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "product_id, counted_quantity, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterAdjustment(c.Context(), in.ProductID, in.CountedQuantity, in.Notes, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	if mov == nil {
		// Conteo igual al saldo: sin asiento.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "sin diferencia, ajuste no requerido"})
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// GetStock godoc
// @Summary      Saldo actual de un producto
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.uc.GetCurrentStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{
		ProductID: stock.ProductID,
		Quantity:  stock.Quantity,
		UpdatedAt: stock.UpdatedAt,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        from   query  string  false  "Fecha inicial (RFC3339)"
// @Param        to     query  string  false  "Fecha final (RFC3339)"
// @Param        type   query  string  false  "Tipo de movimiento"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		Type:   c.Query("type"),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		}
		filter.To = &t
	}
	movements, err := h.uc.ListMovements(c.Context(), c.Params("id"), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ListLowStock godoc
// @Summary      Productos con stock en o bajo el umbral mínimo
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/products/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LowStockItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, &dto.LowStockItemDTO{
			ProductID:    item.Product.ID,
			Name:         item.Product.Name,
			Category:     item.Product.Category,
			UnitMeasure:  item.Product.UnitMeasure,
			CurrentStock: item.Stock.Quantity,
			MinThreshold: item.Product.MinThreshold,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Direction: m.Direction,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Notes:     m.Notes,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
	}
}
