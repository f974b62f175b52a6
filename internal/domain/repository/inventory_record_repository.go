package repository

import (
	"context"

	"github.com/clinova/clinica-api/internal/domain/entity"
)

// InventoryRecordRepository define el puerto para la existencia por
// (producto, profesional). Se usa dentro de transacciones para garantizar
// consistencia; GetForUpdate bloquea la fila (SELECT FOR UPDATE).
type InventoryRecordRepository interface {
	Get(productID, ownerID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila para update. Devuelve nil (sin error) si
	// el registro no existe todavía.
	GetForUpdate(productID, ownerID string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error
	// ListBelowThreshold devuelve los registros del profesional con
	// quantity_on_hand < reorder_threshold, mayor déficit primero.
	ListBelowThreshold(ctx context.Context, ownerID string) ([]*entity.InventoryRecord, error)
}
