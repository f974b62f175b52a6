package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinica-api/internal/application/dto"
	"github.com/clinova/clinica-api/internal/application/inventory"
	"github.com/clinova/clinica-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de stock (protegido).
// El owner del inventario es siempre el profesional autenticado.
type InventoryHandler struct {
	applyUC *inventory.ApplyMovementUseCase
	queries *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(applyUC *inventory.ApplyMovementUseCase, queries *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{applyUC: applyUC, queries: queries}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  INBOUND suma, OUTBOUND descuenta (consumiendo lotes por
//
//	vencimiento), ADJUSTMENT fija el valor absoluto tras conteo físico.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	result, err := h.applyUC.ApplyMovement(c.Context(), inventory.MovementInput{
		ProductID:  in.ProductID,
		OwnerID:    ownerID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		ActorID:    ownerID,
		LotHint:    in.LotHint,
		LotCode:    in.LotCode,
		ExpiryDate: in.ExpiryDate,
		UnitCost:   in.UnitCost,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		MovementID:       result.MovementID,
		PreviousQuantity: result.PreviousQuantity,
		NewQuantity:      result.NewQuantity,
		Delta:            result.NewQuantity - result.PreviousQuantity,
	})
}

// GetInventory godoc
// @Summary      Existencia actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	summary, err := h.queries.GetInventory(c.Context(), productID, ownerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.InventoryResponse{
		ProductID:        summary.ProductID,
		OwnerID:          summary.OwnerID,
		QuantityOnHand:   summary.QuantityOnHand,
		ReorderThreshold: summary.ReorderThreshold,
		LastMovementAt:   summary.LastMovementAt,
	})
}

// ListLots godoc
// @Summary      Lotes disponibles de un producto
// @Description  Orden de consumo: vence antes primero, sin vencimiento de últimos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/inventory/{productId}/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	lots, err := h.queries.ListLots(c.Context(), productID, ownerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toLotResponses(lots))
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Límite"  default(50)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/{productId}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	movements, err := h.queries.ListMovements(c.Context(), productID, ownerID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			ActorID:       m.ActorID,
			LotID:         m.LotID,
			SourceOrderID: m.SourceOrderID,
			SourceSaleID:  m.SourceSaleID,
			CreatedAt:     m.CreatedAt,
		})
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Productos bajo el umbral de reposición
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	records, err := h.queries.ListLowStock(c.Context(), ownerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.LowStockItemResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.LowStockItemResponse{
			ProductID:        r.ProductID,
			QuantityOnHand:   r.QuantityOnHand,
			ReorderThreshold: r.ReorderThreshold,
			Deficit:          r.ReorderThreshold - r.QuantityOnHand,
		})
	}
	return c.JSON(out)
}

// ListExpiringLots godoc
// @Summary      Lotes próximos a vencer
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(30)
// @Success      200  {array}  dto.LotResponse
// @Router       /api/inventory/expiring-lots [get]
func (h *InventoryHandler) ListExpiringLots(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	days := c.QueryInt("days", 30)
	lots, err := h.queries.ListExpiringLots(c.Context(), ownerID, days)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toLotResponses(lots))
}

// SetThreshold godoc
// @Summary      Fijar umbral de reposición de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                   true  "ID del producto"
// @Param        body       body  dto.SetThresholdRequest  true  "Umbral"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/threshold [put]
func (h *InventoryHandler) SetThreshold(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	var in dto.SetThresholdRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.applyUC.SetReorderThreshold(c.Context(), productID, ownerID, in.ReorderThreshold); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toLotResponses(lots []*entity.Lot) []dto.LotResponse {
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.LotResponse{
			ID:                l.ID,
			ProductID:         l.ProductID,
			LotCode:           l.LotCode,
			ExpiryDate:        l.ExpiryDate,
			InitialQuantity:   l.InitialQuantity,
			RemainingQuantity: l.RemainingQuantity,
			CreatedAt:         l.CreatedAt,
		})
	}
	return out
}
