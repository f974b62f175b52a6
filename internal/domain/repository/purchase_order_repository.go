package repository

import "github.com/clinova/clinica-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la cabecera (evita dos recepciones concurrentes).
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
