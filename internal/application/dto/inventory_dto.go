package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
// quantity siempre positiva; para ADJUSTMENT es el nuevo valor absoluto.
// lot_hint solo aplica a OUTBOUND; lot_code/expiry_date solo a INBOUND.
type ApplyMovementRequest struct {
	ProductID  string           `json:"product_id" validate:"required,uuid4"`
	Type       string           `json:"type" validate:"required,oneof=INBOUND OUTBOUND ADJUSTMENT"`
	Quantity   int64            `json:"quantity" validate:"required,gt=0"`
	Reason     string           `json:"reason" validate:"required"`
	LotHint    string           `json:"lot_hint,omitempty"`
	LotCode    string           `json:"lot_code,omitempty"`
	ExpiryDate *time.Time       `json:"expiry_date,omitempty"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
}

// MovementResultResponse respuesta de aplicar un movimiento.
type MovementResultResponse struct {
	MovementID       string `json:"movement_id"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
	Delta            int64  `json:"delta"` // derivado (nueva − previa), no almacenado
}

// InventoryResponse existencia actual de un producto para el profesional.
type InventoryResponse struct {
	ProductID        string     `json:"product_id"`
	OwnerID          string     `json:"owner_id"`
	QuantityOnHand   int64      `json:"quantity_on_hand"`
	ReorderThreshold int64      `json:"reorder_threshold"`
	LastMovementAt   *time.Time `json:"last_movement_at,omitempty"`
}

// LotResponse lote con cantidad disponible.
type LotResponse struct {
	ID                string     `json:"id"`
	ProductID         string     `json:"product_id"`
	LotCode           string     `json:"lot_code"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	InitialQuantity   int64      `json:"initial_quantity"`
	RemainingQuantity int64      `json:"remaining_quantity"`
	CreatedAt         time.Time  `json:"created_at"`
}

// MovementResponse entrada del historial de movimientos.
type MovementResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Reason        string    `json:"reason"`
	ActorID       string    `json:"actor_id"`
	LotID         *string   `json:"lot_id,omitempty"`
	SourceOrderID *string   `json:"source_order_id,omitempty"`
	SourceSaleID  *string   `json:"source_sale_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// LowStockItemResponse registro por debajo del umbral de reposición.
type LowStockItemResponse struct {
	ProductID        string `json:"product_id"`
	QuantityOnHand   int64  `json:"quantity_on_hand"`
	ReorderThreshold int64  `json:"reorder_threshold"`
	Deficit          int64  `json:"deficit"`
}

// SetThresholdRequest body para PUT /api/inventory/:productId/threshold.
type SetThresholdRequest struct {
	ReorderThreshold int64 `json:"reorder_threshold" validate:"gte=0"`
}
