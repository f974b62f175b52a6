package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func lote(id, code string, remaining int64, expiry *time.Time, created time.Time) *entity.Lot {
	return &entity.Lot{
		ID:                id,
		LotCode:           code,
		ExpiryDate:        expiry,
		InitialQuantity:   remaining,
		RemainingQuantity: remaining,
		CreatedAt:         created,
	}
}

func fecha(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Allocate
// ──────────────────────────────────────────────────────────────────────────────

// El lote que vence primero se consume primero, aunque se haya creado después.
func TestAllocate_VenceAntesSeConsumePrimero(t *testing.T) {
	lots := []*entity.Lot{
		lote("l1", "L1", 50, fecha("2025-01-01"), base),
		lote("l2", "L2", 20, fecha("2024-06-01"), base.Add(time.Hour)),
	}

	plan, err := inventory.Allocate(25, lots)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, "l2", plan[0].LotID, "L2 vence antes y debe agotarse primero")
	assert.Equal(t, int64(20), plan[0].Quantity)
	assert.Equal(t, "l1", plan[1].LotID)
	assert.Equal(t, int64(5), plan[1].Quantity, "el resto sale del lote con vencimiento posterior")
}

// Lotes sin fecha de vencimiento se consumen de últimos.
func TestAllocate_SinVencimientoVaDeUltimo(t *testing.T) {
	lots := []*entity.Lot{
		lote("sin", "SIN-FECHA", 100, nil, base),
		lote("con", "CON-FECHA", 10, fecha("2026-12-31"), base.Add(48*time.Hour)),
	}

	plan, err := inventory.Allocate(15, lots)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "con", plan[0].LotID, "el stock fechado se usa antes de que venza")
	assert.Equal(t, int64(10), plan[0].Quantity)
	assert.Equal(t, "sin", plan[1].LotID)
	assert.Equal(t, int64(5), plan[1].Quantity)
}

// Empate de vencimiento: gana el lote creado primero.
func TestAllocate_EmpateResueltoPorCreacion(t *testing.T) {
	exp := fecha("2025-03-01")
	lots := []*entity.Lot{
		lote("nuevo", "B", 30, exp, base.Add(time.Hour)),
		lote("viejo", "A", 30, exp, base),
	}

	plan, err := inventory.Allocate(30, lots)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "viejo", plan[0].LotID)
}

// Lotes agotados (remaining = 0) no participan de la asignación.
func TestAllocate_IgnoraLotesAgotados(t *testing.T) {
	agotado := lote("ag", "AG", 0, fecha("2024-01-15"), base)
	lots := []*entity.Lot{
		agotado,
		lote("ok", "OK", 40, fecha("2025-01-15"), base),
	}

	plan, err := inventory.Allocate(10, lots)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "ok", plan[0].LotID)
}

// Si los lotes no alcanzan, se devuelve ShortageError con la cantidad sin cubrir
// y ningún plan parcial.
func TestAllocate_FaltanteDevuelveShortage(t *testing.T) {
	lots := []*entity.Lot{
		lote("l1", "L1", 5, fecha("2024-06-01"), base),
		lote("l2", "L2", 3, nil, base),
	}

	plan, err := inventory.Allocate(20, lots)
	assert.Nil(t, plan, "no debe devolverse un plan parcial")
	require.Error(t, err)

	var shortage *domain.ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, int64(20), shortage.Required)
	assert.Equal(t, int64(12), shortage.Unmet)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Cantidad requerida cero o negativa es inválida.
func TestAllocate_CantidadInvalida(t *testing.T) {
	lots := []*entity.Lot{lote("l1", "L1", 10, nil, base)}

	_, err := inventory.Allocate(0, lots)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.Allocate(-5, lots)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Función pura: mismas entradas producen exactamente el mismo plan, en el
// mismo orden, en llamadas repetidas.
func TestAllocate_Determinista(t *testing.T) {
	lots := []*entity.Lot{
		lote("a", "A", 7, fecha("2024-09-01"), base),
		lote("b", "B", 7, fecha("2024-09-01"), base),
		lote("c", "C", 7, nil, base),
		lote("d", "D", 7, fecha("2024-02-01"), base),
	}

	first, err1 := inventory.Allocate(18, lots)
	second, err2 := inventory.Allocate(18, lots)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)

	// Orden esperado: D (vence primero), luego A y B (empate por fecha,
	// desempate por LotCode), C (sin vencimiento) ni se toca.
	require.Len(t, first, 3)
	assert.Equal(t, "d", first[0].LotID)
	assert.Equal(t, "a", first[1].LotID)
	assert.Equal(t, "b", first[2].LotID)
	assert.Equal(t, int64(4), first[2].Quantity)
}

// Sin lotes candidatos: todo el requerido queda sin cubrir.
func TestAllocate_SinLotes(t *testing.T) {
	_, err := inventory.Allocate(10, nil)
	var shortage *domain.ShortageError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, int64(10), shortage.Unmet)
}
