package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create persiste el producto y asigna su ID.
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE)
	// para que lecturas-luego-escrituras concurrentes sobre el mismo
	// producto no pierdan actualizaciones. Usar solo dentro de una tx.
	GetForUpdate(id int64) (*entity.Product, error)
	// GetByNameCategoryUnit busca por la tripleta que define la identidad
	// de duplicado (nombre normalizado, categoría, unidad).
	GetByNameCategoryUnit(name, category, unit string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCategoryName reescribe la categoría desnormalizada en todos los
	// productos que apuntan a oldName; devuelve cuántas filas tocó.
	UpdateCategoryName(oldName, newName string) (int64, error)
	// List devuelve todos los productos ordenados por nombre ascendente.
	List() ([]*entity.Product, error)
	ListByCategory(category string) ([]*entity.Product, error)
	CountByCategory(category string) (int64, error)
	// ScalePrices multiplica el precio de todos los productos por factor en
	// una sola sentencia (todo o nada); devuelve cuántas filas tocó.
	ScalePrices(factor decimal.Decimal) (int64, error)
	ScalePricesByCategory(category string, factor decimal.Decimal) (int64, error)
	Delete(id int64) error
}
