package repository

import "github.com/clinova/clinica-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia de ventas a pacientes.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus líneas.
	GetByID(id string) (*entity.Sale, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Sale, error)
}
