// Package memory implementa los tres repositorios y el TxRunner sobre mapas
// en memoria protegidos por un mutex. Sirve para ejecución standalone
// (STORE_DRIVER=memory), demos y tests de casos de uso sin PostgreSQL.
//
// La transacción toma el lock global y trabaja sobre el estado vivo con una
// instantánea previa: si el callback falla, el estado se restaura completo.
// Eso reproduce la semántica todo-o-nada y la exclusión mutua por fila que
// la implementación PostgreSQL logra con transacciones y SELECT FOR UPDATE.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	appledger "github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/pricing"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ catalog.TxRunner = (*Store)(nil)
var _ appledger.TxRunner = (*Store)(nil)
var _ pricing.TxRunner = (*Store)(nil)

// Store contiene el estado compartido y el lock que lo protege.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	movements  []*entity.Movement

	nextCategoryID int64
	nextProductID  int64
	nextMovementID int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: &state{
		categories: make(map[int64]*entity.Category),
		products:   make(map[int64]*entity.Product),
	}}
}

// clone copia el estado completo para poder restaurarlo en rollback.
func (s *state) clone() *state {
	c := &state{
		categories:     make(map[int64]*entity.Category, len(s.categories)),
		products:       make(map[int64]*entity.Product, len(s.products)),
		movements:      make([]*entity.Movement, len(s.movements)),
		nextCategoryID: s.nextCategoryID,
		nextProductID:  s.nextProductID,
		nextMovementID: s.nextMovementID,
	}
	for id, cat := range s.categories {
		cp := *cat
		c.categories[id] = &cp
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for i, m := range s.movements {
		cp := *m
		c.movements[i] = &cp
	}
	return c
}

// Run toma el lock, guarda una instantánea y ejecuta fn con repos atados al
// estado vivo. Si fn falla, restaura la instantánea: ninguna escritura
// parcial sobrevive.
func (s *Store) Run(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	movements repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	err := fn(&categoryRepo{s.data}, &productRepo{s.data}, &movementRepo{s.data})
	if err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Categories devuelve un repositorio con locking propio para uso fuera de
// transacciones.
func (s *Store) Categories() repository.CategoryRepository {
	return &lockedCategoryRepo{store: s}
}

// Products devuelve un repositorio con locking propio para uso fuera de
// transacciones.
func (s *Store) Products() repository.ProductRepository {
	return &lockedProductRepo{store: s}
}

// Movements devuelve un repositorio con locking propio para uso fuera de
// transacciones.
func (s *Store) Movements() repository.MovementRepository {
	return &lockedMovementRepo{store: s}
}

func sortCategories(list []*entity.Category) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}

func sortProducts(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}
