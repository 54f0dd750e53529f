package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las búsquedas por nombre comparan bajo la forma normalizada
// (sin acentos, mayúsculas, sin espacios extremos).
type CategoryRepository interface {
	// Create persiste la categoría y asigna su ID.
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	// Update reescribe nombre, tamaño y empaque de la fila.
	Update(category *entity.Category) error
	// List devuelve todas las categorías ordenadas por nombre ascendente.
	List() ([]*entity.Category, error)
	Delete(id int64) error
}
