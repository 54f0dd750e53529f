package entity

import "time"

// Tipos de movimiento según el signo del cambio de cantidad.
const (
	MovementKindNone = "NONE" // la cantidad no cambió
	MovementKindIn   = "IN"   // entrada: cantidad aumentó
	MovementKindOut  = "OUT"  // salida: cantidad disminuyó
)

// Movement es el registro inmutable de auditoría que acompaña a cada
// mutación de producto. Solo se inserta: nunca se edita ni se borra.
//
// ProductName es una instantánea del nombre al momento del movimiento,
// no una referencia viva; renombrar el producto después no lo altera.
// Delta es la magnitud del cambio de cantidad (siempre >= 0).
type Movement struct {
	ID          int64
	Date        time.Time
	ProductName string
	Delta       int64
	Kind        string // NONE, IN, OUT
	Status      string // ver internal/domain/ledger
}
