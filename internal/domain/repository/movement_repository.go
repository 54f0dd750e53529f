package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para Movement (DIP).
// La tabla es de solo inserción: no existen Update ni Delete.
type MovementRepository interface {
	// Create inserta el movimiento y asigna su ID.
	Create(movement *entity.Movement) error
	// List devuelve todos los movimientos ordenados por fecha ascendente.
	List() ([]*entity.Movement, error)
	ListByProductName(name string) ([]*entity.Movement, error)
}
