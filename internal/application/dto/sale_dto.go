package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	PatientID string                  `json:"patient_id" validate:"required"`
	Items     []CreateSaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateSaleItemRequest línea de venta. unit_price en cero usa el precio de catálogo.
type CreateSaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse venta registrada con sus líneas.
type SaleResponse struct {
	ID         string             `json:"id"`
	PatientID  string             `json:"patient_id"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
	SoldAt     time.Time          `json:"sold_at"`
	Items      []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
