// Package ledger implementa los casos de uso de entrada y salida de stock:
// la cantidad del producto se ajusta con bloqueo de fila y cada ajuste queda
// auditado con exactamente un movimiento.
package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domledger "github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase registra entradas y salidas de stock de forma transaccional.
type UseCase struct {
	movements repository.MovementRepository
	txRunner  TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(movements repository.MovementRepository, txRunner TxRunner) *UseCase {
	return &UseCase{movements: movements, txRunner: txRunner}
}

// RegisterEntry suma amount al stock del producto. Exige amount > 0
// (ErrInvalidAmount). El Status se deriva contra los totales nuevos:
// una entrada que supera el máximo queda ABOVE, no WITHIN.
func (uc *UseCase) RegisterEntry(ctx context.Context, productID, amount int64) (*dto.MovementResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return uc.adjust(ctx, productID, amount)
}

// RegisterExit resta amount del stock del producto. Exige amount > 0.
// Si la resta dejaría la cantidad en negativo y el llamador no lo confirmó
// con allowNegative, falla con ErrWouldGoNegative: nunca se recorta a cero
// en silencio.
func (uc *UseCase) RegisterExit(ctx context.Context, productID, amount int64, allowNegative bool) (*dto.MovementResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		prev, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if prev == nil {
			return domain.ErrNotFound
		}
		if prev.Quantity-amount < 0 && !allowNegative {
			return domain.ErrWouldGoNegative
		}
		mov, err := applyDelta(products, movements, prev, -amount)
		if err != nil {
			return err
		}
		out = dto.ToMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// adjust aplica un delta positivo bajo bloqueo de fila.
func (uc *UseCase) adjust(ctx context.Context, productID, amount int64) (*dto.MovementResponse, error) {
	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		prev, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if prev == nil {
			return domain.ErrNotFound
		}
		mov, err := applyDelta(products, movements, prev, amount)
		if err != nil {
			return err
		}
		out = dto.ToMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyDelta persiste la nueva cantidad y el movimiento que la audita.
// prev ya viene bloqueado por la transacción del caller.
func applyDelta(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	prev *entity.Product,
	delta int64,
) (*entity.Movement, error) {
	next := *prev
	next.Quantity = prev.Quantity + delta
	next.UpdatedAt = time.Now()
	if err := products.Update(&next); err != nil {
		return nil, err
	}
	kind, magnitude := domledger.Classify(prev.Quantity, next.Quantity)
	mov := &entity.Movement{
		Date:        next.UpdatedAt,
		ProductName: next.Name,
		Delta:       magnitude,
		Kind:        kind,
		Status:      domledger.Derive(prev, &next),
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// List devuelve el historial de movimientos ordenado por fecha ascendente,
// opcionalmente filtrado por nombre de producto (instantánea).
func (uc *UseCase) List(ctx context.Context, productName string) ([]dto.MovementResponse, error) {
	var (
		list []*entity.Movement
		err  error
	)
	if productName != "" {
		list, err = uc.movements.ListByProductName(productName)
	} else {
		list, err = uc.movements.List()
	}
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponses(list), nil
}
