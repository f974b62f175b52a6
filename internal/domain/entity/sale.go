package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta de productos a un paciente. Las líneas cuyo
// producto tiene DeductsStock generan un movimiento OUTBOUND cada una, en la
// misma transacción que la venta: ninguna venta parcial con líneas sin stock.
type Sale struct {
	ID         string
	OwnerID    string
	PatientID  string
	GrandTotal decimal.Decimal
	SoldAt     time.Time
	CreatedBy  string
	CreatedAt  time.Time
	Items      []SaleItem
}

// SaleItem línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
