package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Supplier string                   `json:"supplier" validate:"required"`
	Items    []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest línea solicitada.
type CreateOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReceiveOrderRequest body para POST /api/orders/:id/receive.
// lot_details es opcional por línea: quien recibe puede anotar código de lote
// y vencimiento; sin detalle, la existencia entra sin lote asociado.
type ReceiveOrderRequest struct {
	LotDetails map[string]LotDetailRequest `json:"lot_details,omitempty"`
}

// LotDetailRequest detalle de lote anotado en la recepción.
type LotDetailRequest struct {
	LotCode    string     `json:"lot_code" validate:"required"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// OrderResponse orden de compra con sus líneas.
type OrderResponse struct {
	ID         string              `json:"id"`
	Supplier   string              `json:"supplier"`
	Status     string              `json:"status"`
	OrderedAt  time.Time           `json:"ordered_at"`
	ReceivedAt *time.Time          `json:"received_at,omitempty"`
	Items      []OrderItemResponse `json:"items"`
}

// OrderItemResponse línea de orden.
type OrderItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	LotCode    string          `json:"lot_code,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}
