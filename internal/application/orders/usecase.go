package orders

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

// PurchaseOrderUseCase crea órdenes de compra y las marca recibidas,
// registrando una entrada de stock por línea dentro de la misma transacción
// que el cambio de estado de la orden.
type PurchaseOrderUseCase struct {
	txRunner    OrderTxRunner
	applyUC     *inventory.ApplyMovementUseCase
	productRepo repository.ProductRepository
	orderRepo   repository.PurchaseOrderRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner OrderTxRunner,
	applyUC *inventory.ApplyMovementUseCase,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:    txRunner,
		applyUC:     applyUC,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// CreateOrderInput entrada para crear una orden de compra.
type CreateOrderInput struct {
	OwnerID  string
	ActorID  string
	Supplier string
	Items    []CreateOrderItem
}

// CreateOrderItem línea solicitada.
type CreateOrderItem struct {
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
}

// CreateOrder valida productos y cantidades y persiste la orden en estado ORDERED.
func (uc *PurchaseOrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.PurchaseOrder, error) {
	if input.OwnerID == "" || input.ActorID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		OwnerID:   input.OwnerID,
		Supplier:  input.Supplier,
		Status:    entity.OrderStatusOrdered,
		OrderedAt: now,
		CreatedBy: input.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// LotDetail detalle de lote anotado por quien recibe (opcional por línea).
type LotDetail struct {
	LotCode    string
	ExpiryDate *time.Time
}

// ReceiveOrderInput entrada para marcar una orden como recibida.
// LotDetails mapea id de línea → detalle de lote; las líneas sin detalle
// acumulan existencia sin lote asociado (brecha permitida).
type ReceiveOrderInput struct {
	OrderID    string
	OwnerID    string
	ActorID    string
	LotDetails map[string]LotDetail
}

// ReceiveOrder marca la orden como recibida: un movimiento INBOUND por línea
// y el cambio de estado, todo en una transacción. Si cualquier línea falla,
// no se registra ninguna recepción parcial.
func (uc *PurchaseOrderUseCase) ReceiveOrder(ctx context.Context, input ReceiveOrderInput) (*entity.PurchaseOrder, error) {
	if input.OrderID == "" || input.OwnerID == "" || input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}

	var received *entity.PurchaseOrder
	err := uc.txRunner.RunOrder(ctx, func(
		invRepo repository.InventoryRecordRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.OwnerID != input.OwnerID {
			return domain.ErrForbidden
		}
		if !order.CanBeReceived() {
			return domain.ErrConflict
		}

		now := time.Now()
		for i := range order.Items {
			item := &order.Items[i]
			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			movInput := inventory.MovementInput{
				ProductID:     item.ProductID,
				OwnerID:       order.OwnerID,
				Type:          entity.MovementTypeINBOUND,
				Quantity:      item.Quantity,
				Reason:        "recepción de orden de compra",
				ActorID:       input.ActorID,
				UnitCost:      &item.UnitCost,
				SourceOrderID: &order.ID,
			}
			if detail, ok := input.LotDetails[item.ID]; ok && detail.LotCode != "" {
				movInput.LotCode = detail.LotCode
				movInput.ExpiryDate = detail.ExpiryDate
				item.LotCode = detail.LotCode
				item.ExpiryDate = detail.ExpiryDate
			}
			if _, err := uc.applyUC.ApplyMovementInTx(invRepo, lotRepo, movRepo, product, movInput); err != nil {
				return err
			}
		}

		// El estado cambia solo después de que todas las líneas entraron
		order.Status = entity.OrderStatusReceived
		order.ReceivedAt = &now
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// GetOrder devuelve una orden del profesional con sus líneas.
func (uc *PurchaseOrderUseCase) GetOrder(ctx context.Context, orderID, ownerID string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ListOrders lista las órdenes del profesional.
func (uc *PurchaseOrderUseCase) ListOrders(ctx context.Context, ownerID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orderRepo.ListByOwner(ownerID, limit, offset)
}
