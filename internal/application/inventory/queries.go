package inventory

import (
	"context"
	"time"

	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

// QueryUseCase resuelve las consultas de solo lectura del libro de stock.
// Trabaja contra repositorios atados al pool (sin transacción).
type QueryUseCase struct {
	invRepo     repository.InventoryRecordRepository
	lotRepo     repository.LotRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{invRepo: invRepo, lotRepo: lotRepo, movRepo: movRepo, productRepo: productRepo}
}

// InventorySummary existencia actual de un producto para un profesional.
type InventorySummary struct {
	ProductID        string
	OwnerID          string
	QuantityOnHand   int64
	ReorderThreshold int64
	LastMovementAt   *time.Time
}

// GetInventory devuelve la existencia actual con el timestamp del último movimiento.
// Un par sin registro equivale a existencia cero (el registro se crea con el
// primer movimiento).
func (uc *QueryUseCase) GetInventory(ctx context.Context, productID, ownerID string) (*InventorySummary, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	record, err := uc.invRepo.Get(productID, ownerID)
	if err != nil {
		return nil, err
	}
	summary := &InventorySummary{ProductID: productID, OwnerID: ownerID}
	if record != nil {
		summary.QuantityOnHand = record.QuantityOnHand
		summary.ReorderThreshold = record.ReorderThreshold
		last, err := uc.movRepo.LastMovementAt(record.ID)
		if err != nil {
			return nil, err
		}
		summary.LastMovementAt = last
	}
	return summary, nil
}

// ListLots devuelve los lotes con cantidad disponible del par (producto,
// profesional), ordenados por vencimiento ascendente.
func (uc *QueryUseCase) ListLots(ctx context.Context, productID, ownerID string) ([]*entity.Lot, error) {
	return uc.lotRepo.ListActive(productID, ownerID)
}

// ListMovements devuelve el historial de movimientos, más reciente primero.
// Un par sin registro de inventario tiene historial vacío.
func (uc *QueryUseCase) ListMovements(ctx context.Context, productID, ownerID string, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	record, err := uc.invRepo.Get(productID, ownerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []*entity.StockMovement{}, nil
	}
	return uc.movRepo.ListByInventoryRecord(record.ID, limit, offset)
}

// ListLowStock devuelve los registros del profesional con existencia por
// debajo de su umbral de reposición, mayor déficit primero.
func (uc *QueryUseCase) ListLowStock(ctx context.Context, ownerID string) ([]*entity.InventoryRecord, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.invRepo.ListBelowThreshold(ctx, ownerID)
}

// ListExpiringLots devuelve los lotes con cantidad disponible que vencen
// dentro de la ventana de días indicada.
func (uc *QueryUseCase) ListExpiringLots(ctx context.Context, ownerID string, withinDays int) ([]*entity.Lot, error) {
	if ownerID == "" || withinDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	until := time.Now().AddDate(0, 0, withinDays)
	return uc.lotRepo.ListExpiring(ctx, ownerID, until)
}
