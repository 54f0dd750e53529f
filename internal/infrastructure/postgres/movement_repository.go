package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). La tabla movements es de solo inserción: este
// adaptador no tiene sentencias UPDATE ni DELETE a propósito.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna el ID generado.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (date, product_name, delta, kind, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.Date, movement.ProductName, movement.Delta, movement.Kind, movement.Status,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve todos los movimientos ordenados por fecha ascendente.
func (r *MovementRepo) List() ([]*entity.Movement, error) {
	query := `
		SELECT id, date, product_name, delta, kind, status
		FROM movements ORDER BY date ASC, id ASC`
	return r.queryMany(query)
}

// ListByProductName devuelve los movimientos cuya instantánea de nombre
// coincide, en orden de fecha ascendente.
func (r *MovementRepo) ListByProductName(name string) ([]*entity.Movement, error) {
	query := `
		SELECT id, date, product_name, delta, kind, status
		FROM movements WHERE product_name = $1 ORDER BY date ASC, id ASC`
	return r.queryMany(query, name)
}

func (r *MovementRepo) queryMany(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Date, &m.ProductName, &m.Delta, &m.Kind, &m.Status); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
