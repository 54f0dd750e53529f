// Package pricing implementa el ajuste masivo de precios: todos los
// productos o solo los de una categoría, escalados por un porcentaje en una
// operación todo-o-nada.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var oneHundred = decimal.NewFromInt(100)

// TxRunner misma forma que catalog.TxRunner; la implementación de
// infraestructura satisface ambos puertos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error) error
}

// UseCase ajusta precios por porcentaje. El repreciado masivo no genera
// movimientos: el precio no forma parte del estado auditado por el ledger.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// IncreaseAll sube el precio de todos los productos en percent%.
func (uc *UseCase) IncreaseAll(ctx context.Context, percent decimal.Decimal) (*dto.AdjustPricesResponse, error) {
	return uc.adjust(ctx, percent, "", true)
}

// DecreaseAll baja el precio de todos los productos en percent%.
func (uc *UseCase) DecreaseAll(ctx context.Context, percent decimal.Decimal) (*dto.AdjustPricesResponse, error) {
	return uc.adjust(ctx, percent, "", false)
}

// IncreaseByCategory sube los precios de una categoría. Si la categoría no
// existe falla con ErrCategoryNotFound sin tocar ningún producto.
func (uc *UseCase) IncreaseByCategory(ctx context.Context, category string, percent decimal.Decimal) (*dto.AdjustPricesResponse, error) {
	return uc.adjust(ctx, percent, category, true)
}

// DecreaseByCategory baja los precios de una categoría.
func (uc *UseCase) DecreaseByCategory(ctx context.Context, category string, percent decimal.Decimal) (*dto.AdjustPricesResponse, error) {
	return uc.adjust(ctx, percent, category, false)
}

// adjust valida el porcentaje, resuelve el factor (1 ± percent/100) y escala
// el conjunto completo dentro de una transacción.
func (uc *UseCase) adjust(ctx context.Context, percent decimal.Decimal, category string, increase bool) (*dto.AdjustPricesResponse, error) {
	if !percent.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidPercent
	}
	// Una baja del 100% o más dejaría precios negativos y rompería el
	// invariante precio >= 0.
	if !increase && percent.GreaterThanOrEqual(oneHundred) {
		return nil, domain.ErrInvalidPercent
	}
	ratio := percent.Div(oneHundred)
	factor := decimal.NewFromInt(1)
	if increase {
		factor = factor.Add(ratio)
	} else {
		factor = factor.Sub(ratio)
	}

	var affected int64
	err := uc.txRunner.Run(ctx, func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		if category == "" {
			n, err := products.ScalePrices(factor)
			if err != nil {
				return err
			}
			affected = n
			return nil
		}
		cat, err := categories.GetByName(category)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrCategoryNotFound
		}
		n, err := products.ScalePricesByCategory(cat.Name, factor)
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustPricesResponse{Affected: affected}, nil
}
