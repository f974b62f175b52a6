package orders

import (
	"context"

	"github.com/clinova/clinica-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock más el de órdenes. La recepción de una orden y sus
// movimientos INBOUND comparten transacción: o entra todo o no entra nada.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		invRepo repository.InventoryRecordRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
