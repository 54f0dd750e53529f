package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. Category referencia a la categoría
// por nombre y debe existir.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit" validate:"required"`
	Quantity int64           `json:"quantity"`
	Minimum  int64           `json:"minimum" validate:"min=0"`
	Maximum  int64           `json:"maximum" validate:"min=0"`
	Category string          `json:"category" validate:"required"`
}

// UpdateProductRequest actualización completa de un producto existente.
// Nombre, categoría, umbrales y cantidad pueden cambiar en la misma petición;
// el motor del ledger resuelve la prioridad del Status resultante.
type UpdateProductRequest struct {
	ID       int64           `json:"id" validate:"required,gt=0"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit" validate:"required"`
	Quantity int64           `json:"quantity"`
	Minimum  int64           `json:"minimum" validate:"min=0"`
	Maximum  int64           `json:"maximum" validate:"min=0"`
	Category string          `json:"category" validate:"required"`
}

// DeleteProductRequest baja de producto por ID.
type DeleteProductRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// FindProductRequest búsqueda por ID o por la tripleta (nombre, categoría,
// unidad). Con ID > 0 gana el ID.
type FindProductRequest struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// ListProductsRequest listado, opcionalmente filtrado por categoría.
type ListProductsRequest struct {
	Category string `json:"category"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Quantity  int64           `json:"quantity"`
	Minimum   int64           `json:"minimum"`
	Maximum   int64           `json:"maximum"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
