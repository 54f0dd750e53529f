package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	appledger "github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/pricing"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// Gateway enruta cada pareja (action, entity) al método de motor que
// corresponde y traduce los errores tipados al sobre de respuesta. No
// contiene lógica de negocio: validar forma, despachar y traducir.
type Gateway struct {
	categories *catalog.CategoryUseCase
	products   *catalog.ProductUseCase
	ledger     *appledger.UseCase
	pricing    *pricing.UseCase
	validate   *validator.Validate
}

// NewGateway construye el gateway con los motores inyectados.
func NewGateway(
	categories *catalog.CategoryUseCase,
	products *catalog.ProductUseCase,
	ledger *appledger.UseCase,
	pricingUC *pricing.UseCase,
) *Gateway {
	return &Gateway{
		categories: categories,
		products:   products,
		ledger:     ledger,
		pricing:    pricingUC,
		validate:   validator.New(),
	}
}

// Dispatch resuelve una petición completa. Toda falla vuelve como sobre de
// error con mensaje legible; nunca como panic ni error crudo.
func (g *Gateway) Dispatch(ctx context.Context, req Request) Response {
	if err := g.validate.Struct(req); err != nil {
		return NewError("petición inválida: action o entity no reconocidos")
	}
	switch req.Entity {
	case EntityCategory:
		return g.dispatchCategory(ctx, req)
	case EntityProduct:
		return g.dispatchProduct(ctx, req)
	case EntityRegistro:
		return g.dispatchRegistro(ctx, req)
	case EntityReport:
		return g.dispatchReport(ctx, req)
	}
	return NewError("entidad no soportada")
}

// decode deserializa el payload en out y aplica las reglas de forma de sus
// tags de validación.
func (g *Gateway) decode(payload json.RawMessage, out any) error {
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return domain.ErrValidation
		}
	}
	if err := g.validate.Struct(out); err != nil {
		return domain.ErrValidation
	}
	return nil
}

func (g *Gateway) dispatchCategory(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionCreate:
		var in dto.CreateCategoryRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		out, err := g.categories.Create(ctx, in)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("categoría creada", out)
	case ActionFind:
		var in dto.FindCategoryRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		out, err := g.categories.GetByName(ctx, in.Name)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	case ActionUpdate:
		var in dto.RenameCategoryRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		out, err := g.categories.Rename(ctx, in)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("categoría renombrada", out)
	case ActionDelete:
		var in dto.DeleteCategoryRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		if err := g.categories.Delete(ctx, in.ID); err != nil {
			return errorResponse(err)
		}
		return NewSuccess("categoría eliminada", nil)
	case ActionList:
		out, err := g.categories.List(ctx)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	}
	return NewError("operación no soportada para CATEGORY")
}

func (g *Gateway) dispatchProduct(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionCreate:
		var in dto.CreateProductRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		out, err := g.products.Create(ctx, in)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("producto creado", out)
	case ActionFind:
		var in dto.FindProductRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		if in.ID > 0 {
			out, err := g.products.GetByID(ctx, in.ID)
			if err != nil {
				return errorResponse(err)
			}
			return NewSuccess("", out)
		}
		// Sin ID la búsqueda es por tripleta y la tripleta es completa:
		// nombre, categoría y unidad.
		if in.Name == "" || in.Category == "" || in.Unit == "" {
			return errorResponse(domain.ErrValidation)
		}
		out, err := g.products.GetByNameCategoryUnit(ctx, in.Name, in.Category, in.Unit)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	case ActionUpdate:
		var in dto.UpdateProductRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		out, err := g.products.Update(ctx, in)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("producto actualizado", out)
	case ActionDelete:
		var in dto.DeleteProductRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		if err := g.products.Delete(ctx, in.ID); err != nil {
			return errorResponse(err)
		}
		return NewSuccess("producto eliminado", nil)
	case ActionList:
		var in dto.ListProductsRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		out, err := g.products.List(ctx, in.Category)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	case ActionIncrease, ActionDecrease:
		return g.dispatchPricing(ctx, req)
	}
	return NewError("operación no soportada para PRODUCT")
}

// dispatchPricing resuelve INCREASE/DECREASE sobre PRODUCT: ajuste masivo de
// precios, global o por categoría.
func (g *Gateway) dispatchPricing(ctx context.Context, req Request) Response {
	var in dto.AdjustPricesRequest
	if err := g.decode(req.Payload, &in); err != nil {
		return errorResponse(err)
	}
	var (
		out *dto.AdjustPricesResponse
		err error
	)
	switch {
	case req.Action == ActionIncrease && in.Category == "":
		out, err = g.pricing.IncreaseAll(ctx, in.Percent)
	case req.Action == ActionIncrease:
		out, err = g.pricing.IncreaseByCategory(ctx, in.Category, in.Percent)
	case in.Category == "":
		out, err = g.pricing.DecreaseAll(ctx, in.Percent)
	default:
		out, err = g.pricing.DecreaseByCategory(ctx, in.Category, in.Percent)
	}
	if err != nil {
		return errorResponse(err)
	}
	return NewSuccess("precios ajustados", out)
}

func (g *Gateway) dispatchRegistro(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionCreate:
		var in dto.RegisterMovementRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		var (
			out *dto.MovementResponse
			err error
		)
		if in.Kind == "IN" {
			out, err = g.ledger.RegisterEntry(ctx, in.ProductID, in.Amount)
		} else {
			out, err = g.ledger.RegisterExit(ctx, in.ProductID, in.Amount, in.AllowNegative)
		}
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("movimiento registrado", out)
	case ActionList:
		var in dto.ListMovementsRequest
		if err := g.decode(req.Payload, &in); err != nil {
			return errorResponse(err)
		}
		out, err := g.ledger.List(ctx, in.ProductName)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	}
	return NewError("operación no soportada para REGISTRO")
}

// dispatchReport entrega los datasets ordenados que consume el proyector de
// reportes externo.
func (g *Gateway) dispatchReport(ctx context.Context, req Request) Response {
	if req.Action != ActionList {
		return NewError("operación no soportada para REPORT")
	}
	var in ListReportRequest
	if err := g.decode(req.Payload, &in); err != nil {
		return errorResponse(err)
	}
	switch in.Type {
	case "products":
		out, err := g.products.List(ctx, "")
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	case "categories":
		out, err := g.categories.List(ctx)
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	default: // movements: validado por el tag oneof
		out, err := g.ledger.List(ctx, "")
		if err != nil {
			return errorResponse(err)
		}
		return NewSuccess("", out)
	}
}

// errorResponse traduce los errores tipados del dominio al sobre de error.
// Un error no reconocido se reporta genérico: el detalle interno queda en el
// log del servidor, no en el cable.
func errorResponse(err error) Response {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrHasDependents),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrWouldGoNegative),
		errors.Is(err, domain.ErrInvalidPercent),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrPartialUpdate):
		return NewError(err.Error())
	default:
		return NewError("error interno del servidor")
	}
}
