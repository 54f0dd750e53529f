package dto

import (
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ToCategoryResponse convierte la entidad a su DTO de salida.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Size:      c.Size,
		Packaging: c.Packaging,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToProductResponse convierte la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Unit:      p.Unit,
		Quantity:  p.Quantity,
		Minimum:   p.Minimum,
		Maximum:   p.Maximum,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToMovementResponse convierte la entidad a su DTO de salida.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		Date:        m.Date,
		ProductName: m.ProductName,
		Delta:       m.Delta,
		Kind:        m.Kind,
		Status:      m.Status,
	}
}

// ToProductResponses convierte una lista de entidades preservando el orden.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items
}

// ToCategoryResponses convierte una lista de entidades preservando el orden.
func ToCategoryResponses(list []*entity.Category) []CategoryResponse {
	items := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToCategoryResponse(c))
	}
	return items
}

// ToMovementResponses convierte una lista de entidades preservando el orden.
func ToMovementResponses(list []*entity.Movement) []MovementResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return items
}
