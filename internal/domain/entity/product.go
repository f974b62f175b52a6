package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la clínica.
// Desde el punto de vista del libro de stock es inmutable, salvo los dos flags:
// RequiresLotTracking (se controla por lotes con vencimiento) y DeductsStock
// (algunos productos son informativos y nunca mueven stock).
type Product struct {
	ID                  string
	Name                string
	Description         string
	UnitMeasure         string          // unidad, caja, ml, etc.
	Price               decimal.Decimal // precio de venta al paciente
	RequiresLotTracking bool
	DeductsStock        bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
