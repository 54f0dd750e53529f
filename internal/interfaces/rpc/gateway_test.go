package rpc_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	appledger "github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/pricing"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/interfaces/rpc"
)

func newGateway(t *testing.T) *rpc.Gateway {
	t.Helper()
	store := memory.NewStore()
	categories := catalog.NewCategoryUseCase(store.Categories(), store.Products(), store)
	products := catalog.NewProductUseCase(store.Categories(), store.Products(), store)
	ledgerUC := appledger.NewUseCase(store.Movements(), store)
	pricingUC := pricing.NewUseCase(store)
	return rpc.NewGateway(categories, products, ledgerUC, pricingUC)
}

func request(t *testing.T, action, entity string, payload any) rpc.Request {
	t.Helper()
	req := rpc.Request{Action: action, Entity: entity}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		req.Payload = raw
	}
	return req
}

func dispatch(t *testing.T, g *rpc.Gateway, action, entity string, payload any) rpc.Response {
	t.Helper()
	return g.Dispatch(context.Background(), request(t, action, entity, payload))
}

func mustSuccess(t *testing.T, resp rpc.Response) {
	t.Helper()
	require.Equal(t, rpc.StatusSuccess, resp.Status, "respuesta: %s", resp.Message)
}

func seedCatalog(t *testing.T, g *rpc.Gateway) {
	t.Helper()
	mustSuccess(t, dispatch(t, g, rpc.ActionCreate, rpc.EntityCategory, map[string]any{
		"name": "Bebidas", "size": "MEDIUM", "packaging": "CAN",
	}))
	mustSuccess(t, dispatch(t, g, rpc.ActionCreate, rpc.EntityProduct, map[string]any{
		"name": "Cola", "price": "100", "unit": "UN",
		"quantity": 10, "minimum": 5, "maximum": 20, "category": "Bebidas",
	}))
}

func TestDispatch_SobreInvalido(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()

	resp := g.Dispatch(ctx, rpc.Request{Action: "EXPLODE", Entity: rpc.EntityProduct})
	assert.Equal(t, rpc.StatusError, resp.Status)

	resp = g.Dispatch(ctx, rpc.Request{Action: rpc.ActionList, Entity: "WAREHOUSE"})
	assert.Equal(t, rpc.StatusError, resp.Status)

	// Pareja válida por separado pero no soportada en conjunto
	resp = dispatch(t, g, rpc.ActionIncrease, rpc.EntityCategory, nil)
	assert.Equal(t, rpc.StatusError, resp.Status)
	assert.Equal(t, "operación no soportada para CATEGORY", resp.Message)

	resp = dispatch(t, g, rpc.ActionUpdate, rpc.EntityRegistro, nil)
	assert.Equal(t, rpc.StatusError, resp.Status)
}

func TestDispatch_PayloadMalformado(t *testing.T) {
	g := newGateway(t)

	resp := g.Dispatch(context.Background(), rpc.Request{
		Action:  rpc.ActionCreate,
		Entity:  rpc.EntityCategory,
		Payload: json.RawMessage(`{"name": `),
	})
	assert.Equal(t, rpc.StatusError, resp.Status)
	assert.Equal(t, domain.ErrValidation.Error(), resp.Message)
}

func TestDispatch_ProductoIdaYVuelta(t *testing.T) {
	g := newGateway(t)
	seedCatalog(t, g)

	resp := dispatch(t, g, rpc.ActionFind, rpc.EntityProduct, map[string]any{
		"name": "Cola", "category": "Bebidas", "unit": "UN",
	})
	mustSuccess(t, resp)

	var found struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Quantity int64  `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &found))
	assert.Equal(t, "Cola", found.Name)
	assert.Equal(t, int64(10), found.Quantity)

	// Por id llega al mismo producto
	resp = dispatch(t, g, rpc.ActionFind, rpc.EntityProduct, map[string]any{"id": found.ID})
	mustSuccess(t, resp)
}

// Sin ID, la búsqueda exige la tripleta completa: una búsqueda a medias se
// rechaza como inválida en vez de reportar "no encontrado".
func TestDispatch_FindProductoTripletaIncompleta(t *testing.T) {
	g := newGateway(t)
	seedCatalog(t, g)

	partials := []map[string]any{
		{"unit": "UN"},
		{"name": "Cola"},
		{"name": "Cola", "category": "Bebidas"},
		{"name": "Cola", "unit": "UN"},
	}
	for _, payload := range partials {
		resp := dispatch(t, g, rpc.ActionFind, rpc.EntityProduct, payload)
		assert.Equal(t, rpc.StatusError, resp.Status)
		assert.Equal(t, domain.ErrValidation.Error(), resp.Message)
	}
}

func TestDispatch_RegistroSalida(t *testing.T) {
	g := newGateway(t)
	seedCatalog(t, g)

	// Sin confirmación el saldo no puede quedar negativo
	resp := dispatch(t, g, rpc.ActionCreate, rpc.EntityRegistro, map[string]any{
		"product_id": 1, "kind": "OUT", "amount": 15,
	})
	assert.Equal(t, rpc.StatusError, resp.Status)
	assert.Equal(t, domain.ErrWouldGoNegative.Error(), resp.Message)

	resp = dispatch(t, g, rpc.ActionCreate, rpc.EntityRegistro, map[string]any{
		"product_id": 1, "kind": "OUT", "amount": 15, "allow_negative": true,
	})
	mustSuccess(t, resp)

	var mov struct {
		Kind   string `json:"kind"`
		Delta  int64  `json:"delta"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &mov))
	assert.Equal(t, "OUT", mov.Kind)
	assert.Equal(t, int64(15), mov.Delta)
	assert.Equal(t, "BELOW", mov.Status)
}

func TestDispatch_RegistroKindInvalido(t *testing.T) {
	g := newGateway(t)
	seedCatalog(t, g)

	resp := dispatch(t, g, rpc.ActionCreate, rpc.EntityRegistro, map[string]any{
		"product_id": 1, "kind": "SIDEWAYS", "amount": 5,
	})
	assert.Equal(t, rpc.StatusError, resp.Status)
}

func TestDispatch_PreciosPorCategoria(t *testing.T) {
	g := newGateway(t)
	seedCatalog(t, g)

	resp := dispatch(t, g, rpc.ActionIncrease, rpc.EntityProduct, map[string]any{
		"percent": "10", "category": "Bebidas",
	})
	mustSuccess(t, resp)

	var out struct {
		Affected int64 `json:"affected"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, int64(1), out.Affected)

	resp = dispatch(t, g, rpc.ActionDecrease, rpc.EntityProduct, map[string]any{
		"percent": "10", "category": "Lácteos",
	})
	assert.Equal(t, rpc.StatusError, resp.Status)
	assert.Equal(t, domain.ErrCategoryNotFound.Error(), resp.Message)
}

func TestDispatch_Reportes(t *testing.T) {
	g := newGateway(t)
	seedCatalog(t, g)

	for _, typ := range []string{"products", "categories", "movements"} {
		resp := dispatch(t, g, rpc.ActionList, rpc.EntityReport, map[string]any{"type": typ})
		mustSuccess(t, resp)
		var rows []json.RawMessage
		require.NoError(t, json.Unmarshal(resp.Data, &rows))
		assert.NotEmpty(t, rows, "reporte %s", typ)
	}

	resp := dispatch(t, g, rpc.ActionList, rpc.EntityReport, map[string]any{"type": "invoices"})
	assert.Equal(t, rpc.StatusError, resp.Status)
}

func TestDispatch_CategoriaConDependientes(t *testing.T) {
	g := newGateway(t)
	seedCatalog(t, g)

	resp := dispatch(t, g, rpc.ActionDelete, rpc.EntityCategory, map[string]any{"id": 1})
	assert.Equal(t, rpc.StatusError, resp.Status)
	assert.Equal(t, domain.ErrHasDependents.Error(), resp.Message)
}
