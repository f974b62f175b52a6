package repository

import "github.com/clinova/clinica-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia de productos (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
