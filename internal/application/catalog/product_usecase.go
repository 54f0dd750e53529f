package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Toda mutación exitosa
// (alta, actualización, baja) registra exactamente un movimiento de
// auditoría en la misma transacción: una escritura física sin rastro de
// auditoría no está permitida.
type ProductUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	txRunner   TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	txRunner TxRunner,
) *ProductUseCase {
	return &ProductUseCase{categories: categories, products: products, txRunner: txRunner}
}

// validate aplica las reglas de forma: nombre y unidad no vacíos, precio no
// negativo, mínimo <= máximo.
func validateProductInput(name, unit string, price decimal.Decimal, minimum, maximum int64) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(unit) == "" {
		return domain.ErrValidation
	}
	if price.IsNegative() {
		return domain.ErrValidation
	}
	if minimum > maximum {
		return domain.ErrValidation
	}
	return nil
}

// Create crea un producto. La categoría se referencia por nombre y debe
// existir; la tripleta (nombre, categoría, unidad) no puede repetirse.
// Registra el movimiento ADDED con el delta del stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.Unit, in.Price, in.Minimum, in.Maximum); err != nil {
		return nil, err
	}
	// La unidad se canonicaliza (trim) ANTES de la verificación de
	// duplicados: la tripleta se compara siempre en la forma en que se
	// persiste.
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	var created *entity.Product
	err := uc.txRunner.Run(ctx, func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		category, err := categories.GetByName(in.Category)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrCategoryNotFound
		}
		duplicate, err := products.GetByNameCategoryUnit(name, category.Name, unit)
		if err != nil {
			return err
		}
		if duplicate != nil {
			return domain.ErrDuplicateName
		}
		now := time.Now()
		product := &entity.Product{
			Name:      name,
			Price:     in.Price,
			Unit:      unit,
			Quantity:  in.Quantity,
			Minimum:   in.Minimum,
			Maximum:   in.Maximum,
			Category:  category.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := products.Create(product); err != nil {
			return err
		}
		kind, delta := ledger.Classify(0, product.Quantity)
		mov := &entity.Movement{
			Date:        now,
			ProductName: product.Name,
			Delta:       delta,
			Kind:        kind,
			Status:      ledger.StatusAdded,
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(created), nil
}

// Update actualiza un producto. La instantánea previa se lee con bloqueo de
// fila ANTES de cualquier escritura: dos actualizaciones concurrentes sobre
// el mismo producto no pueden perder un movimiento. El Status del movimiento
// se deriva comparando la instantánea persistida contra los valores nuevos.
func (uc *ProductUseCase) Update(ctx context.Context, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.Unit, in.Price, in.Minimum, in.Maximum); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		prev, err := products.GetForUpdate(in.ID)
		if err != nil {
			return err
		}
		if prev == nil {
			return domain.ErrNotFound
		}

		category, err := categories.GetByName(in.Category)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrCategoryNotFound
		}

		// La unicidad de la tripleta se reevalúa solo si nombre, categoría o
		// unidad cambian, excluyendo la identidad previa del propio producto.
		// La comparación usa la forma canónica (trim), igual que el almacén.
		tripleChanged := prev.Name != name ||
			prev.Category != category.Name ||
			prev.Unit != unit
		if tripleChanged {
			duplicate, err := products.GetByNameCategoryUnit(name, category.Name, unit)
			if err != nil {
				return err
			}
			if duplicate != nil && duplicate.ID != prev.ID {
				return domain.ErrDuplicateName
			}
		}

		next := &entity.Product{
			ID:        prev.ID,
			Name:      name,
			Price:     in.Price,
			Unit:      unit,
			Quantity:  in.Quantity,
			Minimum:   in.Minimum,
			Maximum:   in.Maximum,
			Category:  category.Name,
			CreatedAt: prev.CreatedAt,
			UpdatedAt: time.Now(),
		}
		if err := products.Update(next); err != nil {
			return err
		}

		kind, delta := ledger.Classify(prev.Quantity, next.Quantity)
		mov := &entity.Movement{
			Date:        next.UpdatedAt,
			ProductName: next.Name,
			Delta:       delta,
			Kind:        kind,
			Status:      ledger.Derive(prev, next),
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(updated), nil
}

// Delete elimina el producto y registra el movimiento DELETED (tipo NONE)
// en la misma transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		prev, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if prev == nil {
			return domain.ErrNotFound
		}
		if err := products.Delete(id); err != nil {
			return err
		}
		mov := &entity.Movement{
			Date:        time.Now(),
			ProductName: prev.Name,
			Delta:       0,
			Kind:        entity.MovementKindNone,
			Status:      ledger.StatusDeleted,
		}
		return movements.Create(mov)
	})
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(product), nil
}

// GetByNameCategoryUnit busca por la tripleta que define la identidad de
// duplicado.
func (uc *ProductUseCase) GetByNameCategoryUnit(ctx context.Context, name, category, unit string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByNameCategoryUnit(name, category, unit)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos ordenados por nombre; con category no vacía filtra
// por esa categoría.
func (uc *ProductUseCase) List(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if category != "" {
		list, err = uc.products.ListByCategory(category)
	} else {
		list, err = uc.products.List()
	}
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(list), nil
}
