package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinica-api/internal/application/apptest"
	"github.com/clinova/clinica-api/internal/application/inventory"
	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testOwnerID = "00000000-0000-0000-0000-0000000000aa"

type env struct {
	store *apptest.Store
	uc    *inventory.ApplyMovementUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := apptest.NewStore()
	uc := inventory.NewApplyMovementUseCase(apptest.NewTxRunner(store), &apptest.ProductRepo{S: store})
	return &env{store: store, uc: uc}
}

// addProduct registra un producto en el catálogo de prueba.
func (e *env) addProduct(t *testing.T, lotTracked bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:                  uuid.NewString(),
		Name:                "producto-" + uuid.NewString()[:8],
		UnitMeasure:         "unidad",
		RequiresLotTracking: lotTracked,
		DeductsStock:        true,
	}
	require.NoError(t, (&apptest.ProductRepo{S: e.store}).Create(p))
	return p
}

// seedStock aplica un INBOUND para dejar existencia inicial.
func (e *env) seedStock(t *testing.T, productID string, qty int64, lotCode string, expiry *time.Time) {
	t.Helper()
	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID:  productID,
		OwnerID:    testOwnerID,
		Type:       entity.MovementTypeINBOUND,
		Quantity:   qty,
		Reason:     "carga inicial",
		ActorID:    testOwnerID,
		LotCode:    lotCode,
		ExpiryDate: expiry,
	})
	require.NoError(t, err)
}

func fechaPtr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// INBOUND
// ──────────────────────────────────────────────────────────────────────────────

// El primer INBOUND de un par (producto, profesional) crea el registro de
// inventario de forma perezosa.
func TestApplyMovement_INBOUNDCreaRegistroPerezoso(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)

	res, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeINBOUND,
		Quantity:  10,
		Reason:    "compra directa",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 0, res.PreviousQuantity)
	assert.EqualValues(t, 10, res.NewQuantity)

	record := e.store.RecordFor(p.ID, testOwnerID)
	require.NotNil(t, record, "el registro debe crearse con el primer movimiento")
	assert.EqualValues(t, 10, record.QuantityOnHand)
	require.Len(t, e.store.Movements, 1)
	assert.Equal(t, entity.MovementTypeINBOUND, e.store.Movements[0].Type)
}

// INBOUND de un producto con control por lotes y detalle de lote crea el lote
// y lo referencia en el movimiento.
func TestApplyMovement_INBOUNDConLoteCreaLote(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	expiry := fechaPtr(time.Now().AddDate(0, 6, 0))

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID:  p.ID,
		OwnerID:    testOwnerID,
		Type:       entity.MovementTypeINBOUND,
		Quantity:   20,
		Reason:     "recepción",
		ActorID:    testOwnerID,
		LotCode:    "L-2026-001",
		ExpiryDate: expiry,
	})
	require.NoError(t, err)

	require.Len(t, e.store.Lots, 1)
	require.Len(t, e.store.Movements, 1)
	require.NotNil(t, e.store.Movements[0].LotID, "el movimiento debe referenciar el lote creado")
	lot := e.store.Lots[*e.store.Movements[0].LotID]
	assert.Equal(t, "L-2026-001", lot.LotCode)
	assert.EqualValues(t, 20, lot.RemainingQuantity)
}

// INBOUND sin detalle de lote de un producto con control por lotes suma al
// total sin crear lote (brecha reconocida).
func TestApplyMovement_INBOUNDSinDetalleDeLoteNoCreaLote(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeINBOUND,
		Quantity:  5,
		Reason:    "entrada sin lote",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err)
	assert.Empty(t, e.store.Lots)
	assert.EqualValues(t, 5, e.store.RecordFor(p.ID, testOwnerID).QuantityOnHand)
}

// ──────────────────────────────────────────────────────────────────────────────
// OUTBOUND
// ──────────────────────────────────────────────────────────────────────────────

// La salida consume primero el lote que vence antes y referencia ese lote en
// el movimiento cuando el descuento cae en uno solo.
func TestApplyMovement_OUTBOUNDConsumePrimeroElQueVenceAntes(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 10, "TARDIO", fechaPtr(time.Now().AddDate(1, 0, 0)))
	e.seedStock(t, p.ID, 10, "PRONTO", fechaPtr(time.Now().AddDate(0, 1, 0)))

	res, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  6,
		Reason:    "aplicación a paciente",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 20, res.PreviousQuantity)
	assert.EqualValues(t, 14, res.NewQuantity)

	var pronto, tardio *entity.Lot
	for _, l := range e.store.Lots {
		switch l.LotCode {
		case "PRONTO":
			pronto = l
		case "TARDIO":
			tardio = l
		}
	}
	require.NotNil(t, pronto)
	require.NotNil(t, tardio)
	assert.EqualValues(t, 4, pronto.RemainingQuantity, "el lote que vence antes debe descontarse primero")
	assert.EqualValues(t, 10, tardio.RemainingQuantity)

	last := e.store.Movements[len(e.store.Movements)-1]
	require.NotNil(t, last.LotID)
	assert.Equal(t, pronto.ID, *last.LotID)
}

// Una salida que cruza dos lotes agota el primero y deja el movimiento sin
// referencia de lote única.
func TestApplyMovement_OUTBOUNDCruzaDosLotes(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 5, "A", fechaPtr(time.Now().AddDate(0, 1, 0)))
	e.seedStock(t, p.ID, 10, "B", fechaPtr(time.Now().AddDate(0, 2, 0)))

	res, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  8,
		Reason:    "venta",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, res.NewQuantity)

	var a, b *entity.Lot
	for _, l := range e.store.Lots {
		switch l.LotCode {
		case "A":
			a = l
		case "B":
			b = l
		}
	}
	assert.EqualValues(t, 0, a.RemainingQuantity, "el primer lote debe quedar agotado")
	assert.EqualValues(t, 7, b.RemainingQuantity)

	last := e.store.Movements[len(e.store.Movements)-1]
	assert.Nil(t, last.LotID, "sin lote único no debe referenciarse ninguno")
}

// Salida mayor a la existencia → error tipado con disponible/solicitado y
// ningún cambio de estado.
func TestApplyMovement_OUTBOUNDInsuficienteDevuelveDetalle(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)
	e.seedStock(t, p.ID, 3, "", nil)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  10,
		Reason:    "venta",
		ActorID:   testOwnerID,
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.EqualValues(t, 3, insufficient.Available)
	assert.EqualValues(t, 10, insufficient.Requested)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.EqualValues(t, 3, e.store.RecordFor(p.ID, testOwnerID).QuantityOnHand,
		"la existencia no debe cambiar tras un rechazo")
	require.Len(t, e.store.Movements, 1, "no debe registrarse movimiento de la salida rechazada")
}

// Salida de un par sin registro de inventario → ErrInventoryNotFound.
func TestApplyMovement_OUTBOUNDSinRegistroFalla(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  1,
		Reason:    "venta",
		ActorID:   testOwnerID,
	})
	assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

// Producto con control por lotes pero sin lotes registrados (stock cargado
// antes del control): la salida procede sin referencia de lote.
func TestApplyMovement_OUTBOUNDSinLotesProcedeSinReferencia(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 10, "", nil) // entrada sin detalle de lote

	res, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  4,
		Reason:    "venta",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 6, res.NewQuantity)
	last := e.store.Movements[len(e.store.Movements)-1]
	assert.Nil(t, last.LotID)
}

// Lotes existentes pero con menos cantidad que la salida → la operación falla
// completa (no hay descuento parcial de lotes).
func TestApplyMovement_OUTBOUNDFaltanteEnLotesRechazaTodo(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 5, "UNICO", fechaPtr(time.Now().AddDate(0, 1, 0)))
	// Entrada adicional sin lote: el total (12) supera lo loteado (5)
	e.seedStock(t, p.ID, 7, "", nil)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  9,
		Reason:    "venta",
		ActorID:   testOwnerID,
	})
	require.Error(t, err)

	var shortage *domain.ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.EqualValues(t, 9, shortage.Required)
	assert.EqualValues(t, 4, shortage.Unmet)

	for _, l := range e.store.Lots {
		assert.EqualValues(t, 5, l.RemainingQuantity, "el lote no debe descontarse tras el rechazo")
	}
	assert.EqualValues(t, 12, e.store.RecordFor(p.ID, testOwnerID).QuantityOnHand)
}

// ──────────────────────────────────────────────────────────────────────────────
// OUTBOUND con LotHint
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_LotHintConsumeLoteIndicado(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 10, "PRONTO", fechaPtr(time.Now().AddDate(0, 1, 0)))
	e.seedStock(t, p.ID, 10, "TARDIO", fechaPtr(time.Now().AddDate(1, 0, 0)))

	var tardio *entity.Lot
	for _, l := range e.store.Lots {
		if l.LotCode == "TARDIO" {
			tardio = l
		}
	}
	require.NotNil(t, tardio)

	// El hint salta el orden por vencimiento y descuenta el lote indicado
	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  3,
		Reason:    "lote dañado",
		ActorID:   testOwnerID,
		LotHint:   tardio.ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, e.store.Lots[tardio.ID].RemainingQuantity)

	last := e.store.Movements[len(e.store.Movements)-1]
	require.NotNil(t, last.LotID)
	assert.Equal(t, tardio.ID, *last.LotID)
}

func TestApplyMovement_LotHintInsuficienteDevuelveDetalle(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 2, "CHICO", fechaPtr(time.Now().AddDate(0, 1, 0)))
	e.seedStock(t, p.ID, 20, "GRANDE", fechaPtr(time.Now().AddDate(0, 2, 0)))

	var chico *entity.Lot
	for _, l := range e.store.Lots {
		if l.LotCode == "CHICO" {
			chico = l
		}
	}

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  5,
		Reason:    "venta",
		ActorID:   testOwnerID,
		LotHint:   chico.ID,
	})
	require.Error(t, err)

	var lotErr *domain.LotInsufficientError
	require.ErrorAs(t, err, &lotErr)
	assert.Equal(t, chico.ID, lotErr.LotID)
	assert.EqualValues(t, 2, lotErr.Available)
	assert.EqualValues(t, 5, lotErr.Requested)
}

func TestApplyMovement_LotHintInexistenteFalla(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 10, "L1", nil)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  1,
		Reason:    "venta",
		ActorID:   testOwnerID,
		LotHint:   uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ADJUSTMENT
// ──────────────────────────────────────────────────────────────────────────────

// El ajuste fija el valor absoluto del conteo físico y guarda ese valor en el
// movimiento (no el delta). Los lotes no se tocan.
func TestApplyMovement_ADJUSTMENTFijaValorAbsoluto(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 10, "L1", fechaPtr(time.Now().AddDate(0, 3, 0)))

	res, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeADJUSTMENT,
		Quantity:  7,
		Reason:    "conteo físico mensual",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10, res.PreviousQuantity)
	assert.EqualValues(t, 7, res.NewQuantity)

	last := e.store.Movements[len(e.store.Movements)-1]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, last.Type)
	assert.EqualValues(t, 7, last.Quantity, "el movimiento guarda el valor absoluto")

	for _, l := range e.store.Lots {
		assert.EqualValues(t, 10, l.RemainingQuantity, "el ajuste no debe tocar lotes")
	}
}

// Un ajuste sobre un par sin registro lo crea perezosamente.
func TestApplyMovement_ADJUSTMENTCreaRegistro(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)

	res, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeADJUSTMENT,
		Quantity:  15,
		Reason:    "conteo inicial",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.PreviousQuantity)
	assert.EqualValues(t, 15, res.NewQuantity)
	require.NotNil(t, e.store.RecordFor(p.ID, testOwnerID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_CantidadInvalida(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)

	for _, qty := range []int64{0, -5} {
		_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
			ProductID: p.ID,
			OwnerID:   testOwnerID,
			Type:      entity.MovementTypeINBOUND,
			Quantity:  qty,
			Reason:    "x",
			ActorID:   testOwnerID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestApplyMovement_TipoInvalido(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      "TRANSFER",
		Quantity:  1,
		Reason:    "x",
		ActorID:   testOwnerID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_LotHintSoloEnSalidas(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeINBOUND,
		Quantity:  1,
		Reason:    "x",
		ActorID:   testOwnerID,
		LotHint:   uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: uuid.NewString(),
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeINBOUND,
		Quantity:  1,
		Reason:    "x",
		ActorID:   testOwnerID,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Un fallo a mitad de transacción (insert del movimiento) revierte el
// descuento de lotes y del total: ningún cambio parcial sobrevive.
func TestApplyMovement_FalloAMitadDeTransaccionNoDejaCambios(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, true)
	e.seedStock(t, p.ID, 10, "L1", fechaPtr(time.Now().AddDate(0, 2, 0)))

	e.store.FailOnMovementCreate = true
	_, err := e.uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  4,
		Reason:    "venta",
		ActorID:   testOwnerID,
	})
	require.Error(t, err)
	e.store.FailOnMovementCreate = false

	assert.EqualValues(t, 10, e.store.RecordFor(p.ID, testOwnerID).QuantityOnHand)
	for _, l := range e.store.Lots {
		assert.EqualValues(t, 10, l.RemainingQuantity, "el rollback debe reponer el lote")
	}
	require.Len(t, e.store.Movements, 1, "solo debe existir el movimiento de la carga inicial")
}

// Conservación: la suma de entradas menos salidas coincide con la existencia.
func TestApplyMovement_ConservacionDeCantidades(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)
	e.seedStock(t, p.ID, 50, "", nil)

	ctx := context.Background()
	outs := []int64{5, 10, 2}
	for _, q := range outs {
		_, err := e.uc.ApplyMovement(ctx, inventory.MovementInput{
			ProductID: p.ID,
			OwnerID:   testOwnerID,
			Type:      entity.MovementTypeOUTBOUND,
			Quantity:  q,
			Reason:    "venta",
			ActorID:   testOwnerID,
		})
		require.NoError(t, err)
	}

	var balance int64
	for _, m := range e.store.Movements {
		switch m.Type {
		case entity.MovementTypeINBOUND:
			balance += m.Quantity
		case entity.MovementTypeOUTBOUND:
			balance -= m.Quantity
		}
	}
	assert.EqualValues(t, balance, e.store.RecordFor(p.ID, testOwnerID).QuantityOnHand,
		"el libro de movimientos debe reconstruir la existencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintento ante conflicto de concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// runnerConFalloInicial simula una transacción que falla con error de
// serialización la primera vez y funciona la segunda.
type runnerConFalloInicial struct {
	inner    *apptest.TxRunner
	failures int
}

func (r *runnerConFalloInicial) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if r.failures > 0 {
		r.failures--
		return domain.ErrConcurrentModification
	}
	return r.inner.Run(ctx, fn)
}

func TestApplyMovement_ReintentaUnaVezTrasConflicto(t *testing.T) {
	store := apptest.NewStore()
	runner := &runnerConFalloInicial{inner: apptest.NewTxRunner(store), failures: 1}
	uc := inventory.NewApplyMovementUseCase(runner, &apptest.ProductRepo{S: store})

	p := &entity.Product{ID: uuid.NewString(), Name: "suero", DeductsStock: true}
	require.NoError(t, (&apptest.ProductRepo{S: store}).Create(p))

	res, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeINBOUND,
		Quantity:  8,
		Reason:    "compra",
		ActorID:   testOwnerID,
	})
	require.NoError(t, err, "un único conflicto debe resolverse con el reintento")
	assert.EqualValues(t, 8, res.NewQuantity)
}

func TestApplyMovement_DosConflictosSeguidosDevuelvenError(t *testing.T) {
	store := apptest.NewStore()
	runner := &runnerConFalloInicial{inner: apptest.NewTxRunner(store), failures: 2}
	uc := inventory.NewApplyMovementUseCase(runner, &apptest.ProductRepo{S: store})

	p := &entity.Product{ID: uuid.NewString(), Name: "suero", DeductsStock: true}
	require.NoError(t, (&apptest.ProductRepo{S: store}).Create(p))

	_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		OwnerID:   testOwnerID,
		Type:      entity.MovementTypeINBOUND,
		Quantity:  8,
		Reason:    "compra",
		ActorID:   testOwnerID,
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetReorderThreshold
// ──────────────────────────────────────────────────────────────────────────────

func TestSetReorderThreshold_CreaRegistroSiNoExiste(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)

	require.NoError(t, e.uc.SetReorderThreshold(context.Background(), p.ID, testOwnerID, 12))

	record := e.store.RecordFor(p.ID, testOwnerID)
	require.NotNil(t, record)
	assert.EqualValues(t, 12, record.ReorderThreshold)
	assert.EqualValues(t, 0, record.QuantityOnHand)
}

func TestSetReorderThreshold_UmbralNegativoFalla(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, false)
	err := e.uc.SetReorderThreshold(context.Background(), p.ID, testOwnerID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
