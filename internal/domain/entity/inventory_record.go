package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord representa la existencia actual de un producto para un
// profesional (owner). Una fila por par (ProductID, OwnerID); se crea de forma
// perezosa con el primer movimiento. QuantityOnHand nunca baja de cero.
type InventoryRecord struct {
	ID               string
	ProductID        string
	OwnerID          string // profesional dueño del stock
	QuantityOnHand   int64
	ReorderThreshold int64
	CurrentUnitCost  *decimal.Decimal // último costo unitario conocido (opcional)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
