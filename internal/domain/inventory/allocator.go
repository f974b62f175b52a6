package inventory

import (
	"sort"

	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
)

// LotAllocation indica cuánto consumir de un lote concreto.
type LotAllocation struct {
	LotID    string
	LotCode  string
	Quantity int64
}

// Allocate decide de qué lotes descontar una salida (servicio de dominio, función pura).
//
// Orden de consumo: primero el lote que vence antes; lotes sin fecha de
// vencimiento van de últimos (el stock fechado se usa antes de que venza).
// Empates se resuelven por orden de creación (más antiguo primero) y por
// LotCode, para que la asignación sea determinista y testeable.
//
// Recorre los lotes ordenados consumiendo min(remaining, faltante) de cada uno.
// Si los lotes no alcanzan devuelve *domain.ShortageError con la cantidad sin
// cubrir; el caller no debe aplicar una asignación parcial.
func Allocate(required int64, lots []*entity.Lot) ([]LotAllocation, error) {
	if required <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	candidates := make([]*entity.Lot, 0, len(lots))
	for _, l := range lots {
		if l.RemainingQuantity > 0 {
			candidates = append(candidates, l)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		switch {
		case a.ExpiryDate != nil && b.ExpiryDate != nil:
			if !a.ExpiryDate.Equal(*b.ExpiryDate) {
				return a.ExpiryDate.Before(*b.ExpiryDate)
			}
		case a.ExpiryDate != nil:
			return true // a tiene vencimiento, b no: a se consume antes
		case b.ExpiryDate != nil:
			return false
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LotCode < b.LotCode
	})

	var plan []LotAllocation
	remaining := required
	for _, l := range candidates {
		if remaining == 0 {
			break
		}
		take := l.RemainingQuantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, LotAllocation{LotID: l.ID, LotCode: l.LotCode, Quantity: take})
		remaining -= take
	}
	if remaining > 0 {
		return nil, &domain.ShortageError{Required: required, Unmet: remaining}
	}
	return plan, nil
}
