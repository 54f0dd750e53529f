package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías. La creación y el borrado no
// generan movimientos (el movimiento es una instantánea de producto); el
// rename sí: uno por cada producto dependiente reescrito.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	txRunner   TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	txRunner TxRunner,
) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products, txRunner: txRunner}
}

// Create crea una categoría. Falla con ErrDuplicateName si ya existe una con
// el mismo nombre bajo comparación normalizada (sin acentos, mayúsculas).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrValidation
	}
	if !entity.ValidSize(in.Size) || !entity.ValidPackaging(in.Packaging) {
		return nil, domain.ErrValidation
	}
	existing, err := uc.categories.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	now := time.Now()
	category := &entity.Category{
		Name:      strings.TrimSpace(in.Name),
		Size:      in.Size,
		Packaging: in.Packaging,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categories.Create(category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// Rename renombra la categoría y, en la MISMA transacción, reescribe la
// categoría desnormalizada de todos los productos dependientes y registra un
// movimiento ALCATEGORIA (tipo NONE) por cada uno. Si la reescritura masiva
// no cubre exactamente los dependientes leídos, la transacción se revierte
// con ErrPartialUpdate: nunca quedan productos apuntando a un nombre que ya
// no existe.
func (uc *CategoryUseCase) Rename(ctx context.Context, in dto.RenameCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.NewName) == "" {
		return nil, domain.ErrValidation
	}
	var renamed *entity.Category
	err := uc.txRunner.Run(ctx, func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		category, err := categories.GetByName(in.OldName)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrCategoryNotFound
		}
		if existing, err := categories.GetByName(in.NewName); err != nil {
			return err
		} else if existing != nil && existing.ID != category.ID {
			return domain.ErrDuplicateName
		}

		// Dependientes leídos antes de tocar nada: son la referencia contra
		// la que se verifica la reescritura masiva.
		dependents, err := products.ListByCategory(category.Name)
		if err != nil {
			return err
		}

		oldName := category.Name
		category.Name = strings.TrimSpace(in.NewName)
		if in.Size != "" {
			if !entity.ValidSize(in.Size) {
				return domain.ErrValidation
			}
			category.Size = in.Size
		}
		if in.Packaging != "" {
			if !entity.ValidPackaging(in.Packaging) {
				return domain.ErrValidation
			}
			category.Packaging = in.Packaging
		}
		category.UpdatedAt = time.Now()
		if err := categories.Update(category); err != nil {
			return err
		}

		affected, err := products.UpdateCategoryName(oldName, category.Name)
		if err != nil {
			return err
		}
		if affected != int64(len(dependents)) {
			return domain.ErrPartialUpdate
		}

		now := time.Now()
		for _, prev := range dependents {
			next := *prev
			next.Category = category.Name
			kind, delta := ledger.Classify(prev.Quantity, next.Quantity)
			mov := &entity.Movement{
				Date:        now,
				ProductName: next.Name,
				Delta:       delta,
				Kind:        kind,
				Status:      ledger.Derive(prev, &next),
			}
			if err := movements.Create(mov); err != nil {
				return err
			}
		}
		renamed = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(renamed), nil
}

// Delete elimina la categoría por ID. Falla con ErrHasDependents mientras
// existan productos que la referencien: el llamador debe eliminarlos primero
// para que cada baja quede auditada con su propio movimiento.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		category, err := categories.GetByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		count, err := products.CountByCategory(category.Name)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasDependents
		}
		return categories.Delete(id)
	})
}

// GetByName busca una categoría por nombre (comparación normalizada).
func (uc *CategoryUseCase) GetByName(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByName(name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToCategoryResponse(category), nil
}

// List lista todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	return dto.ToCategoryResponses(list), nil
}
