package repository

import (
	"context"
	"time"

	"github.com/clinova/clinica-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia de lotes.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	// GetForUpdate bloquea la fila del lote para descontarla (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Lot, error)
	// ListActiveForUpdate devuelve los lotes con remaining > 0 del par
	// (producto, profesional), ordenados por vencimiento ascendente (nulls
	// de últimos), bloqueando las filas para la transacción actual.
	ListActiveForUpdate(productID, ownerID string) ([]*entity.Lot, error)
	// ListActive igual que ListActiveForUpdate pero de solo lectura (consultas).
	ListActive(productID, ownerID string) ([]*entity.Lot, error)
	// UpdateRemaining fija la cantidad restante de un lote.
	UpdateRemaining(id string, remaining int64) error
	// ListExpiring lotes con remaining > 0 del profesional que vencen hasta la
	// fecha límite, ordenados por vencimiento ascendente.
	ListExpiring(ctx context.Context, ownerID string, until time.Time) ([]*entity.Lot, error)
}
