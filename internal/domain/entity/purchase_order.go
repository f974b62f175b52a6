package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrderStatusDraft    = "DRAFT"
	OrderStatusOrdered  = "ORDERED"
	OrderStatusReceived = "RECEIVED"
)

// PurchaseOrder representa una orden de compra de productos para un
// profesional. Al marcarse recibida genera un movimiento INBOUND por línea,
// todo en una sola transacción: o se recibe completa o no se recibe.
type PurchaseOrder struct {
	ID         string
	OwnerID    string
	Supplier   string
	Status     string
	OrderedAt  time.Time
	ReceivedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []PurchaseOrderItem
}

// PurchaseOrderItem línea de una orden de compra. LotCode y ExpiryDate son
// opcionales: se registran solo si quien recibe anota el detalle del lote.
type PurchaseOrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int64
	UnitCost   decimal.Decimal
	LotCode    string
	ExpiryDate *time.Time
}

// CanBeReceived indica si la orden está en un estado que admite recepción.
func (o *PurchaseOrder) CanBeReceived() bool {
	return o.Status == OrderStatusDraft || o.Status == OrderStatusOrdered
}
