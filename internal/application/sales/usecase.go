package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinova/clinica-api/internal/application/inventory"
	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

// RecordSaleUseCase registra una venta de productos a un paciente y descuenta
// el stock de las líneas que lo mueven, todo en una sola transacción.
type RecordSaleUseCase struct {
	txRunner    SaleTxRunner
	applyUC     *inventory.ApplyMovementUseCase
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRecordRepository
	saleRepo    repository.SaleRepository
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(
	txRunner SaleTxRunner,
	applyUC *inventory.ApplyMovementUseCase,
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRecordRepository,
	saleRepo repository.SaleRepository,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner:    txRunner,
		applyUC:     applyUC,
		productRepo: productRepo,
		invRepo:     invRepo,
		saleRepo:    saleRepo,
	}
}

// SaleInput entrada para registrar una venta.
type SaleInput struct {
	OwnerID   string
	PatientID string
	ActorID   string
	Items     []SaleItemInput
}

// SaleItemInput línea de venta. UnitPrice en cero usa el precio de catálogo.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// RecordSale valida las líneas, verifica stock suficiente para cada línea que
// descuenta (pre-chequeo con la existencia actual) y luego, en una
// transacción, persiste la venta y registra una salida OUTBOUND por línea con
// DeductsStock. Si cualquier salida falla (por ejemplo una venta concurrente
// ya consumió el stock), toda la venta se rechaza.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, input SaleInput) (*entity.Sale, error) {
	if input.OwnerID == "" || input.PatientID == "" || input.ActorID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validación de productos y precios (solo lectura, fuera de la tx)
	productsByID := make(map[string]*entity.Product, len(input.Items))
	for i := range input.Items {
		item := &input.Items[i]
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
	}

	// Pre-chequeo de stock por línea que descuenta. La verificación
	// definitiva ocurre dentro de la transacción con la fila bloqueada; este
	// chequeo evita abrir la tx para ventas que ya se saben imposibles.
	for _, item := range input.Items {
		product := productsByID[item.ProductID]
		if !product.DeductsStock {
			continue
		}
		record, err := uc.invRepo.Get(item.ProductID, input.OwnerID)
		if err != nil {
			return nil, err
		}
		available := int64(0)
		if record != nil {
			available = record.QuantityOnHand
		}
		if available < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Available: available,
				Requested: item.Quantity,
			}
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		OwnerID:   input.OwnerID,
		PatientID: input.PatientID,
		SoldAt:    now,
		CreatedBy: input.ActorID,
		CreatedAt: now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		invRepo repository.InventoryRecordRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		var grandTotal decimal.Decimal
		for _, item := range input.Items {
			subtotal := decimal.NewFromInt(item.Quantity).Mul(item.UnitPrice)
			grandTotal = grandTotal.Add(subtotal)
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  subtotal,
			})
		}
		sale.GrandTotal = grandTotal

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i := range sale.Items {
			if err := saleRepo.CreateItem(&sale.Items[i]); err != nil {
				return err
			}
		}

		// Una salida por línea que descuenta stock; cualquier faltante
		// revierte la venta completa
		for _, item := range input.Items {
			product := productsByID[item.ProductID]
			if !product.DeductsStock {
				continue
			}
			movInput := inventory.MovementInput{
				ProductID:    item.ProductID,
				OwnerID:      input.OwnerID,
				Type:         entity.MovementTypeOUTBOUND,
				Quantity:     item.Quantity,
				Reason:       "venta de producto",
				ActorID:      input.ActorID,
				SourceSaleID: &sale.ID,
			}
			if _, err := uc.applyUC.ApplyMovementInTx(invRepo, lotRepo, movRepo, product, movInput); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale devuelve una venta del profesional con sus líneas.
func (uc *RecordSaleUseCase) GetSale(ctx context.Context, saleID, ownerID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// ListSales lista las ventas del profesional.
func (uc *RecordSaleUseCase) ListSales(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.saleRepo.ListByOwner(ownerID, limit, offset)
}
