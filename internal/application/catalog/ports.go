package catalog

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que las secuencias leer-luego-
// escribir del catálogo (update, rename, delete) sean atómicas y que cada
// mutación y su movimiento de auditoría se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error) error
}
