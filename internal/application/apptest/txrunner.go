package apptest

import (
	"context"

	"github.com/clinova/clinica-api/internal/domain/repository"
)

// TxRunner transacción simulada: toma un snapshot del Store antes de ejecutar
// fn y lo restaura si fn devuelve error. Reproduce la semántica todo-o-nada
// del TxRunner real sin base de datos.
type TxRunner struct {
	S *Store
}

// NewTxRunner construye el runner sobre el estado dado.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{S: s}
}

func (t *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snap := t.S.snapshot()
	err := fn(&InventoryRecordRepo{S: t.S}, &LotRepo{S: t.S}, &StockMovementRepo{S: t.S})
	if err != nil {
		t.S.restore(snap)
	}
	return err
}

func (t *TxRunner) RunOrder(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	snap := t.S.snapshot()
	err := fn(&InventoryRecordRepo{S: t.S}, &LotRepo{S: t.S}, &StockMovementRepo{S: t.S}, &PurchaseOrderRepo{S: t.S})
	if err != nil {
		t.S.restore(snap)
	}
	return err
}

func (t *TxRunner) RunSale(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snap := t.S.snapshot()
	err := fn(&InventoryRecordRepo{S: t.S}, &LotRepo{S: t.S}, &StockMovementRepo{S: t.S}, &SaleRepo{S: t.S})
	if err != nil {
		t.S.restore(snap)
	}
	return err
}
