package entity

import "time"

// Lot representa una subcantidad fechada de un producto (lote) para un
// profesional. Se crea al recibir stock de productos con control por lotes.
// Un lote con RemainingQuantity = 0 está agotado pero se conserva para
// auditoría; nunca se borra físicamente.
type Lot struct {
	ID                string
	ProductID         string
	OwnerID           string
	LotCode           string
	ExpiryDate        *time.Time // opcional; lotes sin vencimiento se consumen de últimos
	InitialQuantity   int64
	RemainingQuantity int64 // 0 <= remaining <= initial
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsExhausted indica si el lote ya no tiene cantidad disponible.
func (l *Lot) IsExhausted() bool {
	return l.RemainingQuantity <= 0
}

// ExpiresWithin indica si el lote vence dentro de la ventana dada contada
// desde now. Lotes sin fecha de vencimiento nunca "vencen".
func (l *Lot) ExpiresWithin(now time.Time, window time.Duration) bool {
	if l.ExpiryDate == nil {
		return false
	}
	return !l.ExpiryDate.After(now.Add(window))
}
