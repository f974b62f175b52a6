package repository

import (
	"time"

	"github.com/clinova/clinica-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos.
// Solo inserta y consulta: los movimientos nunca se actualizan ni se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByInventoryRecord historial del registro, más reciente primero.
	ListByInventoryRecord(inventoryRecordID string, limit, offset int) ([]*entity.StockMovement, error)
	// LastMovementAt timestamp del último movimiento del registro (nil si no hay).
	LastMovementAt(inventoryRecordID string) (*time.Time, error)
}
