package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinica-api/internal/application/apptest"
	"github.com/clinova/clinica-api/internal/application/catalog"
	"github.com/clinova/clinica-api/internal/application/dto"
	"github.com/clinova/clinica-api/internal/domain"
)

func newCatalogUC() *catalog.ProductUseCase {
	store := apptest.NewStore()
	return catalog.NewProductUseCase(&apptest.ProductRepo{S: store})
}

func TestProductCreate_YGetPorID(t *testing.T) {
	uc := newCatalogUC()

	out, err := uc.Create(dto.CreateProductRequest{
		Name:                "Bótox vial 100U",
		UnitMeasure:         "vial",
		Price:               decimal.NewFromInt(350),
		RequiresLotTracking: true,
		DeductsStock:        true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)

	got, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bótox vial 100U", got.Name)
	assert.True(t, got.RequiresLotTracking)
}

func TestProductCreate_NombreDuplicadoRechazado(t *testing.T) {
	uc := newCatalogUC()

	_, err := uc.Create(dto.CreateProductRequest{Name: "Crema", UnitMeasure: "unidad"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Crema", UnitMeasure: "caja"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El update parcial solo toca los campos presentes, incluidos los dos flags.
func TestProductUpdate_Parcial(t *testing.T) {
	uc := newCatalogUC()

	out, err := uc.Create(dto.CreateProductRequest{
		Name:         "Suero facial",
		UnitMeasure:  "unidad",
		Price:        decimal.NewFromInt(90),
		DeductsStock: true,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(95)
	tracked := true
	updated, err := uc.Update(out.ID, dto.UpdateProductRequest{
		Price:               &newPrice,
		RequiresLotTracking: &tracked,
	})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.True(t, updated.RequiresLotTracking)
	assert.Equal(t, "Suero facial", updated.Name, "los campos ausentes no cambian")
	assert.True(t, updated.DeductsStock)
}

func TestProductUpdate_PrecioNegativoRechazado(t *testing.T) {
	uc := newCatalogUC()

	out, err := uc.Create(dto.CreateProductRequest{Name: "Gel", UnitMeasure: "unidad"})
	require.NoError(t, err)

	negative := decimal.NewFromInt(-1)
	_, err = uc.Update(out.ID, dto.UpdateProductRequest{Price: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductGetByID_InexistenteFalla(t *testing.T) {
	uc := newCatalogUC()
	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
