package sales

import (
	"context"

	"github.com/clinova/clinica-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock más el de ventas. La venta y sus salidas OUTBOUND
// comparten transacción: ninguna venta parcial con líneas sin stock.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		invRepo repository.InventoryRecordRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
