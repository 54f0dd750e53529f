package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// fixture arma los casos de uso de catálogo sobre el almacén en memoria.
func fixture(t *testing.T) (*memory.Store, *catalog.CategoryUseCase, *catalog.ProductUseCase) {
	t.Helper()
	store := memory.NewStore()
	categories := catalog.NewCategoryUseCase(store.Categories(), store.Products(), store)
	products := catalog.NewProductUseCase(store.Categories(), store.Products(), store)
	return store, categories, products
}

func mustCreateCategory(t *testing.T, uc *catalog.CategoryUseCase, name string) *dto.CategoryResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:      name,
		Size:      entity.SizeMedium,
		Packaging: entity.PackagingCan,
	})
	require.NoError(t, err)
	return out
}

func mustCreateProduct(t *testing.T, uc *catalog.ProductUseCase, name, category string) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     name,
		Price:    decimal.NewFromInt(100),
		Unit:     "UN",
		Quantity: 10,
		Minimum:  5,
		Maximum:  20,
		Category: category,
	})
	require.NoError(t, err)
	return out
}

func TestCategoryCreate_NombreDuplicadoNormalizado(t *testing.T) {
	_, categories, _ := fixture(t)

	mustCreateCategory(t, categories, "Gaseosas Café")

	// Mismo nombre sin acentos, otra caja, espacios extremos
	_, err := categories.Create(context.Background(), dto.CreateCategoryRequest{
		Name:      "  GASEOSAS CAFE ",
		Size:      entity.SizeSmall,
		Packaging: entity.PackagingGlass,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCategoryCreate_EntradaInvalida(t *testing.T) {
	_, categories, _ := fixture(t)
	ctx := context.Background()

	_, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: "   ", Size: entity.SizeSmall, Packaging: entity.PackagingCan})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = categories.Create(ctx, dto.CreateCategoryRequest{Name: "Bebidas", Size: "GIGANTE", Packaging: entity.PackagingCan})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = categories.Create(ctx, dto.CreateCategoryRequest{Name: "Bebidas", Size: entity.SizeSmall, Packaging: "CARTON"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Escenario A: renombrar BEVERAGES a DRINKS con 3 productos dependientes.
// Los 3 deben reportar la categoría nueva y cada uno genera un movimiento
// ALCATEGORIA de tipo NONE.
func TestCategoryRename_CascadaYMovimientos(t *testing.T) {
	store, categories, products := fixture(t)
	ctx := context.Background()

	mustCreateCategory(t, categories, "BEVERAGES")
	mustCreateProduct(t, products, "Cola", "BEVERAGES")
	mustCreateProduct(t, products, "Soda", "BEVERAGES")
	mustCreateProduct(t, products, "Agua", "BEVERAGES")

	out, err := categories.Rename(ctx, dto.RenameCategoryRequest{OldName: "BEVERAGES", NewName: "DRINKS"})
	require.NoError(t, err)
	assert.Equal(t, "DRINKS", out.Name)

	list, err := products.List(ctx, "DRINKS")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, p := range list {
		assert.Equal(t, "DRINKS", p.Category)
	}

	// La categoría vieja quedó vacía
	old, err := products.List(ctx, "BEVERAGES")
	require.NoError(t, err)
	assert.Empty(t, old)

	// 3 movimientos ADDED (altas) + 3 ALCATEGORIA (rename)
	movs, err := store.Movements().List()
	require.NoError(t, err)
	require.Len(t, movs, 6)
	for _, m := range movs[3:] {
		assert.Equal(t, ledger.StatusCategoryChanged, m.Status)
		assert.Equal(t, entity.MovementKindNone, m.Kind)
		assert.Zero(t, m.Delta)
	}
}

// shortCascadeRunner envuelve al almacén para que la reescritura masiva
// reporte una fila menos de las que tocó, como si un dependiente hubiera
// quedado fuera de la cascada.
type shortCascadeRunner struct{ store *memory.Store }

func (r *shortCascadeRunner) Run(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	movements repository.MovementRepository,
) error) error {
	return r.store.Run(ctx, func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		return fn(categories, underReportingProducts{products}, movements)
	})
}

type underReportingProducts struct{ repository.ProductRepository }

func (p underReportingProducts) UpdateCategoryName(oldName, newName string) (int64, error) {
	affected, err := p.ProductRepository.UpdateCategoryName(oldName, newName)
	if err != nil {
		return affected, err
	}
	return affected - 1, nil
}

// Si las filas reescritas no cubren exactamente los dependientes leídos, el
// rename entero se revierte: ni la categoría ni los productos ni los
// movimientos de la cascada sobreviven.
func TestCategoryRename_ReescrituraIncompletaRevierteTodo(t *testing.T) {
	store, categories, products := fixture(t)
	ctx := context.Background()

	mustCreateCategory(t, categories, "Bebidas")
	mustCreateProduct(t, products, "Cola", "Bebidas")
	mustCreateProduct(t, products, "Agua", "Bebidas")

	before, err := store.Movements().List()
	require.NoError(t, err)

	broken := catalog.NewCategoryUseCase(store.Categories(), store.Products(), &shortCascadeRunner{store: store})
	_, err = broken.Rename(ctx, dto.RenameCategoryRequest{OldName: "Bebidas", NewName: "Refrescos"})
	require.ErrorIs(t, err, domain.ErrPartialUpdate)

	// La categoría conserva su nombre y los productos siguen apuntándole
	cat, err := categories.GetByName(ctx, "Bebidas")
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", cat.Name)

	list, err := products.List(ctx, "Bebidas")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	orphaned, err := products.List(ctx, "Refrescos")
	require.NoError(t, err)
	assert.Empty(t, orphaned)

	after, err := store.Movements().List()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestCategoryRename_NoExiste(t *testing.T) {
	_, categories, _ := fixture(t)
	_, err := categories.Rename(context.Background(), dto.RenameCategoryRequest{OldName: "NADA", NewName: "ALGO"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryRename_ColisionConOtra(t *testing.T) {
	_, categories, _ := fixture(t)
	ctx := context.Background()

	mustCreateCategory(t, categories, "Bebidas")
	mustCreateCategory(t, categories, "Snacks")

	_, err := categories.Rename(ctx, dto.RenameCategoryRequest{OldName: "Snacks", NewName: "BEBIDAS"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// Renombrarse a sí misma (cambio de caja) no es colisión
	_, err = categories.Rename(ctx, dto.RenameCategoryRequest{OldName: "Bebidas", NewName: "BEBIDAS"})
	assert.NoError(t, err)
}

// Escenario D: la baja de una categoría con productos falla con
// ErrHasDependents; tras retirar los productos (cada baja auditada), procede.
func TestCategoryDelete_DosPasos(t *testing.T) {
	store, categories, products := fixture(t)
	ctx := context.Background()

	cat := mustCreateCategory(t, categories, "Limpieza")
	p1 := mustCreateProduct(t, products, "Jabón", "Limpieza")
	p2 := mustCreateProduct(t, products, "Cloro", "Limpieza")

	err := categories.Delete(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents)

	require.NoError(t, products.Delete(ctx, p1.ID))
	require.NoError(t, products.Delete(ctx, p2.ID))

	require.NoError(t, categories.Delete(ctx, cat.ID))

	_, err = categories.GetByName(ctx, "Limpieza")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Cada baja de producto quedó auditada como DELETED
	movs, err := store.Movements().List()
	require.NoError(t, err)
	var deleted int
	for _, m := range movs {
		if m.Status == ledger.StatusDeleted {
			deleted++
			assert.Equal(t, entity.MovementKindNone, m.Kind)
		}
	}
	assert.Equal(t, 2, deleted)
}

func TestCategoryList_OrdenadaPorNombre(t *testing.T) {
	_, categories, _ := fixture(t)
	ctx := context.Background()

	mustCreateCategory(t, categories, "Snacks")
	mustCreateCategory(t, categories, "Bebidas")
	mustCreateCategory(t, categories, "Lácteos")

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Bebidas", list[0].Name)
	assert.Equal(t, "Lácteos", list[1].Name)
	assert.Equal(t, "Snacks", list[2].Name)
}
