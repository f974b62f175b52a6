package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrProductNotFound        = errors.New("producto no encontrado")
	ErrInventoryNotFound      = errors.New("inventario no encontrado para el producto")
	ErrLotNotFound            = errors.New("lote no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrLotInsufficient        = errors.New("cantidad insuficiente en el lote")
	ErrConcurrentModification = errors.New("modificación concurrente, reintentar")
)

// InsufficientStockError lleva el detalle del faltante para que la UI pueda
// explicar el rechazo (disponible vs. solicitado), no solo rechazar.
// errors.Is(err, ErrInsufficientStock) sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	ProductID string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// LotInsufficientError detalle del faltante al descontar un lote específico.
type LotInsufficientError struct {
	LotID     string
	Available int64
	Requested int64
}

func (e *LotInsufficientError) Error() string {
	return fmt.Sprintf("lote %s sin cantidad suficiente: disponible %d, solicitado %d",
		e.LotID, e.Available, e.Requested)
}

func (e *LotInsufficientError) Unwrap() error { return ErrLotInsufficient }

// ShortageError resultado del asignador de lotes cuando los lotes candidatos
// no alcanzan a cubrir la cantidad requerida. Unmet es la cantidad no cubierta.
type ShortageError struct {
	Required int64
	Unmet    int64
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("lotes insuficientes: requerido %d, sin cubrir %d", e.Required, e.Unmet)
}

func (e *ShortageError) Unwrap() error { return ErrInsufficientStock }
