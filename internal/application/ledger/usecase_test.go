package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domledger "github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// fixture deja un producto con cantidad 10, mínimo 5 y máximo 20.
func fixture(t *testing.T) (*catalog.ProductUseCase, *ledger.UseCase, int64) {
	t.Helper()
	store := memory.NewStore()
	categories := catalog.NewCategoryUseCase(store.Categories(), store.Products(), store)
	products := catalog.NewProductUseCase(store.Categories(), store.Products(), store)
	uc := ledger.NewUseCase(store.Movements(), store)

	_, err := categories.Create(context.Background(), dto.CreateCategoryRequest{
		Name: "Bebidas", Size: entity.SizeMedium, Packaging: entity.PackagingCan,
	})
	require.NoError(t, err)
	p, err := products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Cola", Price: decimal.NewFromInt(100), Unit: "UN",
		Quantity: 10, Minimum: 5, Maximum: 20, Category: "Bebidas",
	})
	require.NoError(t, err)
	return products, uc, p.ID
}

func TestRegisterExit_SaldoInsuficiente(t *testing.T) {
	products, uc, id := fixture(t)
	ctx := context.Background()

	_, err := uc.RegisterExit(ctx, id, 15, false)
	assert.ErrorIs(t, err, domain.ErrWouldGoNegative)

	// Rechazo sin efectos: la cantidad queda intacta y no hay movimiento extra
	p, err := products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Quantity)

	movs, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, movs, 1) // solo el alta
}

func TestRegisterExit_NegativoConfirmado(t *testing.T) {
	products, uc, id := fixture(t)
	ctx := context.Background()

	mov, err := uc.RegisterExit(ctx, id, 15, true)
	require.NoError(t, err)

	assert.Equal(t, entity.MovementKindOut, mov.Kind)
	assert.Equal(t, int64(15), mov.Delta)
	assert.Equal(t, domledger.StatusBelow, mov.Status)
	assert.Equal(t, "Cola", mov.ProductName)

	p, err := products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), p.Quantity)
}

func TestRegisterEntry_SuperaElMaximo(t *testing.T) {
	products, uc, id := fixture(t)
	ctx := context.Background()

	mov, err := uc.RegisterEntry(ctx, id, 25)
	require.NoError(t, err)

	assert.Equal(t, entity.MovementKindIn, mov.Kind)
	assert.Equal(t, int64(25), mov.Delta)
	assert.Equal(t, domledger.StatusAbove, mov.Status)

	p, err := products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(35), p.Quantity)
}

func TestRegisterEntry_DentroDelRango(t *testing.T) {
	_, uc, id := fixture(t)

	mov, err := uc.RegisterEntry(context.Background(), id, 5)
	require.NoError(t, err)
	assert.Equal(t, domledger.StatusWithin, mov.Status)
}

func TestRegister_MontoInvalido(t *testing.T) {
	_, uc, id := fixture(t)
	ctx := context.Background()

	for _, amount := range []int64{0, -3} {
		_, err := uc.RegisterEntry(ctx, id, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		_, err = uc.RegisterExit(ctx, id, amount, false)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestRegister_ProductoNoExiste(t *testing.T) {
	_, uc, _ := fixture(t)
	ctx := context.Background()

	_, err := uc.RegisterEntry(ctx, 99, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.RegisterExit(ctx, 99, 5, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorInstantaneaDeNombre(t *testing.T) {
	_, uc, id := fixture(t)
	ctx := context.Background()

	_, err := uc.RegisterEntry(ctx, id, 3)
	require.NoError(t, err)
	_, err = uc.RegisterExit(ctx, id, 2, false)
	require.NoError(t, err)

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	byName, err := uc.List(ctx, "Cola")
	require.NoError(t, err)
	assert.Equal(t, all, byName)

	none, err := uc.List(ctx, "Fanta")
	require.NoError(t, err)
	assert.Empty(t, none)
}
