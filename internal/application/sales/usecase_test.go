package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinica-api/internal/application/apptest"
	"github.com/clinova/clinica-api/internal/application/inventory"
	"github.com/clinova/clinica-api/internal/application/sales"
	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
)

const (
	testOwnerID   = "00000000-0000-0000-0000-0000000000cc"
	testPatientID = "paciente-001"
)

type env struct {
	store   *apptest.Store
	uc      *sales.RecordSaleUseCase
	applyUC *inventory.ApplyMovementUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := apptest.NewStore()
	runner := apptest.NewTxRunner(store)
	productRepo := &apptest.ProductRepo{S: store}
	applyUC := inventory.NewApplyMovementUseCase(runner, productRepo)
	uc := sales.NewRecordSaleUseCase(runner, applyUC, productRepo,
		&apptest.InventoryRecordRepo{S: store}, &apptest.SaleRepo{S: store})
	return &env{store: store, uc: uc, applyUC: applyUC}
}

func (e *env) addProduct(t *testing.T, price int64, deducts, lotTracked bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:                  uuid.NewString(),
		Name:                "item-" + uuid.NewString()[:8],
		UnitMeasure:         "unidad",
		Price:               decimal.NewFromInt(price),
		RequiresLotTracking: lotTracked,
		DeductsStock:        deducts,
	}
	require.NoError(t, (&apptest.ProductRepo{S: e.store}).Create(p))
	return p
}

func (e *env) seedStock(t *testing.T, productID string, qty int64, lotCode string, expiry *time.Time) {
	t.Helper()
	_, err := e.applyUC.ApplyMovement(context.Background(), inventory.MovementInput{
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

// La venta persiste cabecera y líneas, calcula totales y registra una salida
// por cada línea que descuenta stock, referenciando la venta.
func TestRecordSale_DescuentaStockYCalculaTotales(t *testing.T) {
	e := newEnv(t)
	crema := e.addProduct(t, 45, true, false)
	consulta := e.addProduct(t, 60, false, false) // no mueve stock
	e.seedStock(t, crema.ID, 10, "", nil)

	sale, err := e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID:   testOwnerID,
		PatientID: testPatientID,
		ActorID:   testOwnerID,
		Items: []sales.SaleItemInput{
			{ProductID: crema.ID, Quantity: 2},
			{ProductID: consulta.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// unit_price en cero usa el precio de catálogo
	require.Len(t, sale.Items, 2)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(45)))
	assert.True(t, sale.GrandTotal.Equal(decimal.NewFromInt(150)), "2x45 + 1x60")

	// Solo la línea que descuenta generó salida
	assert.EqualValues(t, 8, e.store.RecordFor(crema.ID, testOwnerID).QuantityOnHand)
	assert.Nil(t, e.store.RecordFor(consulta.ID, testOwnerID),
		"un producto que no descuenta no debe tocar inventario")

	var outbound int
	for _, m := range e.store.Movements {
		if m.Type == entity.MovementTypeOUTBOUND {
			outbound++
			require.NotNil(t, m.SourceSaleID)
			assert.Equal(t, sale.ID, *m.SourceSaleID)
		}
	}
	assert.Equal(t, 1, outbound)
}

// Precio explícito en la línea tiene prioridad sobre el catálogo.
func TestRecordSale_PrecioExplicitoPrevalece(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, 100, true, false)
	e.seedStock(t, p.ID, 5, "", nil)

	sale, err := e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID:   testOwnerID,
		PatientID: testPatientID,
		ActorID:   testOwnerID,
		Items: []sales.SaleItemInput{
			{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(80)},
		},
	})
	require.NoError(t, err)
	assert.True(t, sale.GrandTotal.Equal(decimal.NewFromInt(80)))
}

// Una línea sin stock suficiente rechaza la venta completa: nada persiste.
func TestRecordSale_LineaSinStockRechazaVentaCompleta(t *testing.T) {
	e := newEnv(t)
	p1 := e.addProduct(t, 45, true, false)
	p2 := e.addProduct(t, 30, true, false)
	e.seedStock(t, p1.ID, 10, "", nil)
	e.seedStock(t, p2.ID, 1, "", nil)

	_, err := e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID:   testOwnerID,
		PatientID: testPatientID,
		ActorID:   testOwnerID,
		Items: []sales.SaleItemInput{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 5}, // solo hay 1
		},
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, p2.ID, insufficient.ProductID)
	assert.EqualValues(t, 1, insufficient.Available)
	assert.EqualValues(t, 5, insufficient.Requested)

	assert.Empty(t, e.store.Sales, "la venta no debe persistir")
	assert.EqualValues(t, 10, e.store.RecordFor(p1.ID, testOwnerID).QuantityOnHand,
		"la línea buena tampoco debe descontarse")
}

// La venta de un producto con lotes consume por orden de vencimiento.
func TestRecordSale_ConsumeLotesPorVencimiento(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, 350, true, true)
	pronto := time.Now().AddDate(0, 1, 0)
	tarde := time.Now().AddDate(0, 6, 0)
	e.seedStock(t, p.ID, 5, "TARDE", &tarde)
	e.seedStock(t, p.ID, 5, "PRONTO", &pronto)

	_, err := e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID:   testOwnerID,
		PatientID: testPatientID,
		ActorID:   testOwnerID,
		Items:     []sales.SaleItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	for _, l := range e.store.Lots {
		switch l.LotCode {
		case "PRONTO":
			assert.EqualValues(t, 2, l.RemainingQuantity)
		case "TARDE":
			assert.EqualValues(t, 5, l.RemainingQuantity)
		}
	}
}

// Fallo de infraestructura a mitad de la transacción: ni venta ni descuento.
func TestRecordSale_FalloEnTransaccionNoDejaNada(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, 45, true, false)
	e.seedStock(t, p.ID, 10, "", nil)

	e.store.FailOnMovementCreate = true
	_, err := e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID:   testOwnerID,
		PatientID: testPatientID,
		ActorID:   testOwnerID,
		Items:     []sales.SaleItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.Error(t, err)
	e.store.FailOnMovementCreate = false

	assert.Empty(t, e.store.Sales)
	assert.EqualValues(t, 10, e.store.RecordFor(p.ID, testOwnerID).QuantityOnHand)
}

func TestRecordSale_ValidacionesBasicas(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, 45, true, false)

	_, err := e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID: testOwnerID, PatientID: "", ActorID: testOwnerID,
		Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "paciente requerido")

	_, err = e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID: testOwnerID, PatientID: testPatientID, ActorID: testOwnerID,
		Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID: testOwnerID, PatientID: testPatientID, ActorID: testOwnerID,
		Items: []sales.SaleItemInput{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetSale_DeOtroProfesionalProhibido(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, 45, true, false)
	e.seedStock(t, p.ID, 5, "", nil)

	sale, err := e.uc.RecordSale(context.Background(), sales.SaleInput{
		OwnerID:   testOwnerID,
		PatientID: testPatientID,
		ActorID:   testOwnerID,
		Items:     []sales.SaleItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = e.uc.GetSale(context.Background(), sale.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
