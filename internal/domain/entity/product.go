package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
//
// Category guarda el NOMBRE de la categoría, no su id: desnormalización
// deliberada que las consultas de reportes existentes asumen. El invariante
// es que un rename de categoría debe reescribir este campo en todos los
// productos dependientes dentro de la misma transacción.
//
// Quantity puede quedar negativa solo cuando una salida se fuerza con
// allow_negative; Minimum <= Maximum se cumple tras toda escritura exitosa.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal // precio unitario de venta, nunca negativo
	Unit      string          // unidad de medida (ej. "UN", "L", "KG")
	Quantity  int64
	Minimum   int64
	Maximum   int64
	Category  string // nombre de la categoría (desnormalizado)
	CreatedAt time.Time
	UpdatedAt time.Time
}
