package dto

import "time"

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Size      string `json:"size" validate:"required,oneof=SMALL MEDIUM LARGE"`
	Packaging string `json:"packaging" validate:"required,oneof=CAN GLASS PLASTIC"`
}

// RenameCategoryRequest renombra una categoría en sitio. El rename reescribe
// la categoría desnormalizada de todos los productos dependientes en la misma
// transacción. Size/Packaging son opcionales: vacío = conservar.
type RenameCategoryRequest struct {
	OldName   string `json:"old_name" validate:"required"`
	NewName   string `json:"new_name" validate:"required"`
	Size      string `json:"size" validate:"omitempty,oneof=SMALL MEDIUM LARGE"`
	Packaging string `json:"packaging" validate:"omitempty,oneof=CAN GLASS PLASTIC"`
}

// DeleteCategoryRequest baja de categoría por ID.
type DeleteCategoryRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// FindCategoryRequest búsqueda por nombre (comparación normalizada).
type FindCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryResponse representación de salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	Packaging string    `json:"packaging"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
