package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinica-api/internal/application/dto"
	"github.com/clinova/clinica-api/internal/application/orders"
	"github.com/clinova/clinica-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type OrderHandler struct {
	uc *orders.PurchaseOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.PurchaseOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	items := make([]orders.CreateOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, orders.CreateOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	order, err := h.uc.CreateOrder(c.Context(), orders.CreateOrderInput{
		OwnerID:  ownerID,
		ActorID:  ownerID,
		Supplier: in.Supplier,
		Items:    items,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// Receive godoc
// @Summary      Marcar orden como recibida
// @Description  Registra una entrada de stock por línea y cambia el estado a
//
//	RECEIVED, todo en una transacción: la recepción es completa o no ocurre.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "ID de la orden"
// @Param        body  body  dto.ReceiveOrderRequest  false  "Detalle de lotes por línea (opcional)"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	orderID := c.Params("id")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ReceiveOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	details := make(map[string]orders.LotDetail, len(in.LotDetails))
	for itemID, d := range in.LotDetails {
		details[itemID] = orders.LotDetail{LotCode: d.LotCode, ExpiryDate: d.ExpiryDate}
	}
	order, err := h.uc.ReceiveOrder(c.Context(), orders.ReceiveOrderInput{
		OrderID:    orderID,
		OwnerID:    ownerID,
		ActorID:    ownerID,
		LotDetails: details,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// GetByID godoc
// @Summary      Obtener orden de compra
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	orderID := c.Params("id")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	order, err := h.uc.GetOrder(c.Context(), orderID, ownerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de compra del profesional
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	ownerID := GetClinicianID(c)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	list, err := h.uc.ListOrders(c.Context(), ownerID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitCost:   it.UnitCost,
			LotCode:    it.LotCode,
			ExpiryDate: it.ExpiryDate,
		})
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		Supplier:   o.Supplier,
		Status:     o.Status,
		OrderedAt:  o.OrderedAt,
		ReceivedAt: o.ReceivedAt,
		Items:      items,
	}
}
