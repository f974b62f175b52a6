package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeINBOUND    = "INBOUND"    // entrada (recepción de mercancía)
	MovementTypeOUTBOUND   = "OUTBOUND"   // salida (venta, consumo, ajuste manual)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // conteo físico: fija el valor absoluto
)

// IsValidMovementType valida el tipo de movimiento.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeINBOUND, MovementTypeOUTBOUND, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// StockMovement es el registro de auditoría de un cambio de cantidad.
// Inmutable: se inserta una vez y nunca se actualiza ni se borra.
//
// Quantity siempre es positiva; el signo lo implica Type. Para ADJUSTMENT,
// Quantity guarda el nuevo valor absoluto de existencia, no un delta.
type StockMovement struct {
	ID                string
	InventoryRecordID string
	Type              string
	Quantity          int64
	Reason            string
	ActorID           string  // profesional/usuario que causó el movimiento
	LotID             *string // set cuando el movimiento tocó un lote concreto
	SourceOrderID     *string // orden de compra que originó la entrada
	SourceSaleID      *string // venta que originó la salida
	CreatedAt         time.Time
}
