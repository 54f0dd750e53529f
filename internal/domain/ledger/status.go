// Package ledger contiene el servicio de dominio que clasifica cada mutación
// de producto: dado el estado anterior y el propuesto, deriva el Status del
// movimiento de auditoría y el tipo/magnitud del cambio de cantidad.
package ledger

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Status derivado de cada movimiento. Un movimiento se evalúa de forma
// aislada contra la instantánea antes/después del producto; no hay máquina
// de estados multi-paso.
const (
	StatusAdded            = "ADDED"       // solo en creación de producto
	StatusDeleted          = "DELETED"     // solo en eliminación de producto
	StatusCategoryChanged  = "ALCATEGORIA" // cambió SOLO la categoría
	StatusAbove            = "ABOVE"       // cantidad sobre el máximo
	StatusBelow            = "BELOW"       // cantidad bajo el mínimo
	StatusNameChanged      = "NAME_CHANGED"
	StatusMinAndMaxChanged = "MIN_AND_MAX_CHANGED"
	StatusMinChanged       = "MIN_CHANGED"
	StatusMaxChanged       = "MAX_CHANGED"
	StatusWithin           = "WITHIN" // mínimo <= cantidad <= máximo
	StatusNone             = "NONE"   // sin cambio clasificable
)

// Derive aplica la escalera de reglas en orden de prioridad. Las reglas son
// verificaciones secuenciales con guardas: cada una asume que las anteriores
// fallaron, así que el orden no puede reordenarse sin cambiar la semántica.
//
// ALCATEGORIA exige que nombre, cantidad, mínimo y máximo estén intactos
// (el precio puede variar). ABOVE/BELOW tienen prioridad sobre NAME_CHANGED:
// un rename que además deja la cantidad fuera de rango se reporta por el
// rango, no por el nombre.
//
// ADDED y DELETED los asignan los casos de uso de ciclo de vida; Derive
// nunca los devuelve.
func Derive(prev, next *entity.Product) string {
	nameChanged := prev.Name != next.Name
	qtyChanged := prev.Quantity != next.Quantity
	minChanged := prev.Minimum != next.Minimum
	maxChanged := prev.Maximum != next.Maximum
	categoryChanged := prev.Category != next.Category

	switch {
	case categoryChanged && !nameChanged && !qtyChanged && !minChanged && !maxChanged:
		return StatusCategoryChanged
	case next.Quantity > next.Maximum:
		return StatusAbove
	case next.Quantity < next.Minimum:
		return StatusBelow
	case nameChanged:
		return StatusNameChanged
	case minChanged && maxChanged:
		return StatusMinAndMaxChanged
	case minChanged:
		return StatusMinChanged
	case maxChanged:
		return StatusMaxChanged
	case next.Quantity >= next.Minimum && next.Quantity <= next.Maximum:
		return StatusWithin
	default:
		return StatusNone
	}
}

// Classify deriva el tipo de movimiento y la magnitud del delta a partir del
// cambio de cantidad, con independencia del Status.
func Classify(oldQty, newQty int64) (kind string, delta int64) {
	switch {
	case newQty > oldQty:
		return entity.MovementKindIn, newQty - oldQty
	case newQty < oldQty:
		return entity.MovementKindOut, oldQty - newQty
	default:
		return entity.MovementKindNone, 0
	}
}
