package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinica-api/internal/application/inventory"
	"github.com/clinova/clinica-api/internal/application/orders"
	"github.com/clinova/clinica-api/internal/application/sales"
	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.OrderTxRunner = (*TxRunner)(nil)
var _ sales.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los fallos
// de serialización se traducen a ErrConcurrentModification para que el caso de
// uso pueda reintentar.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de stock atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewInventoryRecordRepository(tx),
		NewLotRepository(tx),
		NewStockMovementRepository(tx),
	)
	if err != nil {
		return translateTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTxErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunOrder inicia una transacción con los repos de stock más el de órdenes
// (recepción de órdenes de compra).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewInventoryRecordRepository(tx),
		NewLotRepository(tx),
		NewStockMovementRepository(tx),
		NewPurchaseOrderRepository(tx),
	)
	if err != nil {
		return translateTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTxErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunSale inicia una transacción con los repos de stock más el de ventas
// (registro de venta a paciente).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewInventoryRecordRepository(tx),
		NewLotRepository(tx),
		NewStockMovementRepository(tx),
		NewSaleRepository(tx),
	)
	if err != nil {
		return translateTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTxErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func translateTxErr(err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
	}
	return err
}
