package pricing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/pricing"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// fixture deja dos bebidas (100 y 200) y un snack (50).
func fixture(t *testing.T) (*memory.Store, *catalog.ProductUseCase, *pricing.UseCase) {
	t.Helper()
	store := memory.NewStore()
	categories := catalog.NewCategoryUseCase(store.Categories(), store.Products(), store)
	products := catalog.NewProductUseCase(store.Categories(), store.Products(), store)
	uc := pricing.NewUseCase(store)
	ctx := context.Background()

	for _, name := range []string{"Bebidas", "Snacks"} {
		_, err := categories.Create(ctx, dto.CreateCategoryRequest{
			Name: name, Size: entity.SizeMedium, Packaging: entity.PackagingCan,
		})
		require.NoError(t, err)
	}
	seed := []struct {
		name, category string
		price          int64
	}{
		{"Cola", "Bebidas", 100},
		{"Agua", "Bebidas", 200},
		{"Papas", "Snacks", 50},
	}
	for _, s := range seed {
		_, err := products.Create(ctx, dto.CreateProductRequest{
			Name: s.name, Price: decimal.NewFromInt(s.price), Unit: "UN",
			Quantity: 10, Minimum: 5, Maximum: 20, Category: s.category,
		})
		require.NoError(t, err)
	}
	return store, products, uc
}

func prices(t *testing.T, products *catalog.ProductUseCase, category string) map[string]string {
	t.Helper()
	list, err := products.List(context.Background(), category)
	require.NoError(t, err)
	out := make(map[string]string, len(list))
	for _, p := range list {
		out[p.Name] = p.Price.String()
	}
	return out
}

func TestIncreaseByCategory_DiezPorCiento(t *testing.T) {
	_, products, uc := fixture(t)

	out, err := uc.IncreaseByCategory(context.Background(), "Bebidas", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Affected)

	got := prices(t, products, "")
	assert.True(t, decimal.RequireFromString(got["Cola"]).Equal(decimal.NewFromInt(110)))
	assert.True(t, decimal.RequireFromString(got["Agua"]).Equal(decimal.NewFromInt(220)))
	// Fuera de la categoría nada cambia
	assert.True(t, decimal.RequireFromString(got["Papas"]).Equal(decimal.NewFromInt(50)))
}

func TestDecreaseAll_VeintePorCiento(t *testing.T) {
	_, products, uc := fixture(t)

	out, err := uc.DecreaseAll(context.Background(), decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Affected)

	got := prices(t, products, "")
	assert.True(t, decimal.RequireFromString(got["Cola"]).Equal(decimal.NewFromInt(80)))
	assert.True(t, decimal.RequireFromString(got["Agua"]).Equal(decimal.NewFromInt(160)))
	assert.True(t, decimal.RequireFromString(got["Papas"]).Equal(decimal.NewFromInt(40)))
}

func TestAdjust_PorcentajeInvalido(t *testing.T) {
	_, _, uc := fixture(t)
	ctx := context.Background()

	_, err := uc.IncreaseAll(ctx, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidPercent)

	_, err = uc.IncreaseAll(ctx, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidPercent)

	// Una rebaja del 100% o más dejaría precios en cero o negativos
	_, err = uc.DecreaseAll(ctx, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInvalidPercent)

	_, err = uc.DecreaseByCategory(ctx, "Bebidas", decimal.NewFromInt(150))
	assert.ErrorIs(t, err, domain.ErrInvalidPercent)
}

func TestAdjustByCategory_CategoriaNoExiste(t *testing.T) {
	_, products, uc := fixture(t)

	_, err := uc.IncreaseByCategory(context.Background(), "Lácteos", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	// El rechazo es previo a cualquier escritura: ningún precio se toca
	got := prices(t, products, "")
	assert.True(t, decimal.RequireFromString(got["Cola"]).Equal(decimal.NewFromInt(100)))
	assert.True(t, decimal.RequireFromString(got["Agua"]).Equal(decimal.NewFromInt(200)))
	assert.True(t, decimal.RequireFromString(got["Papas"]).Equal(decimal.NewFromInt(50)))
}

// El repricing masivo no es un hecho de stock: no agrega movimientos.
func TestAdjust_SinMovimientos(t *testing.T) {
	store, _, uc := fixture(t)

	before, err := store.Movements().List()
	require.NoError(t, err)

	_, err = uc.IncreaseAll(context.Background(), decimal.NewFromInt(10))
	require.NoError(t, err)

	after, err := store.Movements().List()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}
