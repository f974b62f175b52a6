package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	domaininv "github.com/clinova/clinica-api/internal/domain/inventory"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

// ApplyMovementUseCase es el único punto de entrada para mutar stock
// (ajuste manual, recepción de orden, venta a paciente). Aplica el movimiento
// de forma transaccional con bloqueo de fila (SELECT FOR UPDATE) y
// Commit/Rollback: ningún cambio parcial sobrevive a un fallo.
type ApplyMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para aplicar un movimiento de stock.
// Quantity siempre positiva; el signo lo implica Type. Para ADJUSTMENT,
// Quantity es el nuevo valor absoluto de existencia (conteo físico).
// LotHint (solo OUTBOUND) fuerza el descuento de un lote específico.
// LotCode/ExpiryDate (solo INBOUND) registran el detalle del lote recibido.
type MovementInput struct {
	ProductID     string
	OwnerID       string
	Type          string
	Quantity      int64
	Reason        string
	ActorID       string
	LotHint       string
	LotCode       string
	ExpiryDate    *time.Time
	UnitCost      *decimal.Decimal
	SourceOrderID *string
	SourceSaleID  *string
}

// MovementResult lo que se devuelve al caller: existencia previa y nueva más
// el id del movimiento creado. El delta (nueva − previa) se deriva para
// mostrar, no se almacena.
type MovementResult struct {
	MovementID       string
	PreviousQuantity int64
	NewQuantity      int64
}

// ApplyMovement valida la entrada, abre la transacción y aplica el movimiento.
// Ante un fallo de serialización (escritura concurrente sobre el mismo par
// producto/profesional) reintenta una vez antes de devolver el error al caller.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	result, err := uc.applyInTransaction(ctx, product, input)
	if errors.Is(err, domain.ErrConcurrentModification) {
		// Suele resolverse releyendo: un solo reintento interno
		result, err = uc.applyInTransaction(ctx, product, input)
	}
	return result, err
}

func (uc *ApplyMovementUseCase) applyInTransaction(ctx context.Context, product *entity.Product, input MovementInput) (*MovementResult, error) {
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRecordRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		result, err = uc.ApplyMovementInTx(invRepo, lotRepo, movRepo, product, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyMovementInTx aplica el movimiento usando repositorios ya atados a una
// transacción del caller (recepción de órdenes y ventas comparten su tx con
// el motor de stock). No valida la entrada: el caller debe hacerlo antes.
func (uc *ApplyMovementUseCase) ApplyMovementInTx(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	input MovementInput,
) (*MovementResult, error) {
	switch input.Type {
	case entity.MovementTypeINBOUND:
		return uc.doInbound(invRepo, lotRepo, movRepo, product, input)
	case entity.MovementTypeOUTBOUND:
		return uc.doOutbound(invRepo, lotRepo, movRepo, product, input)
	case entity.MovementTypeADJUSTMENT:
		return uc.doAdjustment(invRepo, movRepo, input)
	}
	return nil, domain.ErrInvalidInput
}

func validateInput(input MovementInput) error {
	if input.ProductID == "" || input.OwnerID == "" || input.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if input.LotHint != "" && input.Type != entity.MovementTypeOUTBOUND {
		return domain.ErrInvalidInput
	}
	if input.LotCode != "" && input.Type != entity.MovementTypeINBOUND {
		return domain.ErrInvalidInput
	}
	return nil
}

// doInbound: bloquea (o crea perezosamente) el registro de inventario, crea el
// lote si el producto se controla por lotes y vino el detalle, suma la cantidad
// y guarda el movimiento.
func (uc *ApplyMovementUseCase) doInbound(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	input MovementInput,
) (*MovementResult, error) {
	now := time.Now()
	record, err := invRepo.GetForUpdate(input.ProductID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// Primer movimiento del par (producto, profesional)
		record = &entity.InventoryRecord{
			ID:        uuid.New().String(),
			ProductID: input.ProductID,
			OwnerID:   input.OwnerID,
			CreatedAt: now,
		}
	}
	previous := record.QuantityOnHand

	var lotID *string
	if product.RequiresLotTracking && input.LotCode != "" {
		lot := &entity.Lot{
			ID:                uuid.New().String(),
			ProductID:         input.ProductID,
			OwnerID:           input.OwnerID,
			LotCode:           input.LotCode,
			ExpiryDate:        input.ExpiryDate,
			InitialQuantity:   input.Quantity,
			RemainingQuantity: input.Quantity,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := lotRepo.Create(lot); err != nil {
			return nil, err
		}
		lotID = &lot.ID
	}

	record.QuantityOnHand = previous + input.Quantity
	if input.UnitCost != nil {
		record.CurrentUnitCost = input.UnitCost
	}
	record.UpdatedAt = now
	if err := invRepo.Upsert(record); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:                uuid.New().String(),
		InventoryRecordID: record.ID,
		Type:              entity.MovementTypeINBOUND,
		Quantity:          input.Quantity,
		Reason:            input.Reason,
		ActorID:           input.ActorID,
		LotID:             lotID,
		SourceOrderID:     input.SourceOrderID,
		CreatedAt:         now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return &MovementResult{
		MovementID:       movement.ID,
		PreviousQuantity: previous,
		NewQuantity:      record.QuantityOnHand,
	}, nil
}

// doOutbound: bloquea el registro, verifica existencia suficiente, descuenta los
// lotes (hint explícito o asignador por vencimiento) y guarda el movimiento.
func (uc *ApplyMovementUseCase) doOutbound(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	input MovementInput,
) (*MovementResult, error) {
	now := time.Now()
	record, err := invRepo.GetForUpdate(input.ProductID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// No se puede sacar stock que nunca se registró
		return nil, domain.ErrInventoryNotFound
	}
	previous := record.QuantityOnHand
	if previous < input.Quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: input.ProductID,
			Available: previous,
			Requested: input.Quantity,
		}
	}

	var lotID *string
	if product.RequiresLotTracking {
		lotID, err = uc.consumeLots(lotRepo, input)
		if err != nil {
			return nil, err
		}
	}

	record.QuantityOnHand = previous - input.Quantity
	record.UpdatedAt = now
	if err := invRepo.Upsert(record); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:                uuid.New().String(),
		InventoryRecordID: record.ID,
		Type:              entity.MovementTypeOUTBOUND,
		Quantity:          input.Quantity,
		Reason:            input.Reason,
		ActorID:           input.ActorID,
		LotID:             lotID,
		SourceSaleID:      input.SourceSaleID,
		CreatedAt:         now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return &MovementResult{
		MovementID:       movement.ID,
		PreviousQuantity: previous,
		NewQuantity:      record.QuantityOnHand,
	}, nil
}

// consumeLots descuenta la salida de los lotes del producto. Devuelve el id
// del lote consumido cuando el descuento cayó en un único lote (para dejarlo
// referenciado en el movimiento), nil si se repartió entre varios.
func (uc *ApplyMovementUseCase) consumeLots(lotRepo repository.LotRepository, input MovementInput) (*string, error) {
	if input.LotHint != "" {
		lot, err := lotRepo.GetForUpdate(input.LotHint)
		if err != nil {
			return nil, err
		}
		if lot == nil || lot.ProductID != input.ProductID || lot.OwnerID != input.OwnerID {
			return nil, domain.ErrLotNotFound
		}
		if lot.RemainingQuantity < input.Quantity {
			return nil, &domain.LotInsufficientError{
				LotID:     lot.ID,
				Available: lot.RemainingQuantity,
				Requested: input.Quantity,
			}
		}
		if err := lotRepo.UpdateRemaining(lot.ID, lot.RemainingQuantity-input.Quantity); err != nil {
			return nil, err
		}
		return &lot.ID, nil
	}

	lots, err := lotRepo.ListActiveForUpdate(input.ProductID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		// Stock recibido antes del control por lotes (o sin detalle de lote):
		// la salida procede sin referencia a lote. Brecha reconocida, no error.
		return nil, nil
	}

	plan, err := domaininv.Allocate(input.Quantity, lots)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Lot, len(lots))
	for _, l := range lots {
		byID[l.ID] = l
	}
	for _, alloc := range plan {
		lot := byID[alloc.LotID]
		if err := lotRepo.UpdateRemaining(lot.ID, lot.RemainingQuantity-alloc.Quantity); err != nil {
			return nil, err
		}
	}
	if len(plan) == 1 {
		id := plan[0].LotID
		return &id, nil
	}
	return nil, nil
}

// doAdjustment: fija la existencia al valor absoluto del conteo físico.
// No toca lotes: la diferencia contra los lotes es una brecha de conciliación
// que resuelve un operador, no el libro. El movimiento guarda el valor
// absoluto; el delta solo se deriva para el caller.
func (uc *ApplyMovementUseCase) doAdjustment(
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	input MovementInput,
) (*MovementResult, error) {
	now := time.Now()
	record, err := invRepo.GetForUpdate(input.ProductID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &entity.InventoryRecord{
			ID:        uuid.New().String(),
			ProductID: input.ProductID,
			OwnerID:   input.OwnerID,
			CreatedAt: now,
		}
	}
	previous := record.QuantityOnHand
	record.QuantityOnHand = input.Quantity
	record.UpdatedAt = now
	if err := invRepo.Upsert(record); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:                uuid.New().String(),
		InventoryRecordID: record.ID,
		Type:              entity.MovementTypeADJUSTMENT,
		Quantity:          input.Quantity, // valor absoluto, no delta
		Reason:            input.Reason,
		ActorID:           input.ActorID,
		CreatedAt:         now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return &MovementResult{
		MovementID:       movement.ID,
		PreviousQuantity: previous,
		NewQuantity:      record.QuantityOnHand,
	}, nil
}

// SetReorderThreshold fija el umbral de reposición del par (producto,
// profesional), creando el registro si aún no existe.
func (uc *ApplyMovementUseCase) SetReorderThreshold(ctx context.Context, productID, ownerID string, threshold int64) error {
	if productID == "" || ownerID == "" || threshold < 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRecordRepository,
		_ repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		now := time.Now()
		record, err := invRepo.GetForUpdate(productID, ownerID)
		if err != nil {
			return err
		}
		if record == nil {
			record = &entity.InventoryRecord{
				ID:        uuid.New().String(),
				ProductID: productID,
				OwnerID:   ownerID,
				CreatedAt: now,
			}
		}
		record.ReorderThreshold = threshold
		record.UpdatedAt = now
		return invRepo.Upsert(record)
	})
}
