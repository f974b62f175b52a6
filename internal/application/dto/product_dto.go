package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name                string          `json:"name" validate:"required"`
	Description         string          `json:"description"`
	UnitMeasure         string          `json:"unit_measure"`
	Price               decimal.Decimal `json:"price"`
	RequiresLotTracking bool            `json:"requires_lot_tracking"`
	DeductsStock        bool            `json:"deducts_stock"`
}

// UpdateProductRequest body para PUT /api/products/:id. Punteros: solo se
// actualizan los campos presentes.
type UpdateProductRequest struct {
	Name                *string          `json:"name,omitempty"`
	Description         *string          `json:"description,omitempty"`
	UnitMeasure         *string          `json:"unit_measure,omitempty"`
	Price               *decimal.Decimal `json:"price,omitempty"`
	RequiresLotTracking *bool            `json:"requires_lot_tracking,omitempty"`
	DeductsStock        *bool            `json:"deducts_stock,omitempty"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	UnitMeasure         string          `json:"unit_measure"`
	Price               decimal.Decimal `json:"price"`
	RequiresLotTracking bool            `json:"requires_lot_tracking"`
	DeductsStock        bool            `json:"deducts_stock"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
