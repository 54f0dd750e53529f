package memory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/normalizer"
)

// Repositorios "crudos": operan sobre el estado sin tomar el lock. Solo se
// usan dentro de Store.Run, que ya lo tiene tomado.

type categoryRepo struct{ s *state }

var _ repository.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) Create(category *entity.Category) error {
	if existing := r.findByNorm(normalizer.Name(category.Name)); existing != nil {
		return domain.ErrDuplicateName
	}
	r.s.nextCategoryID++
	category.ID = r.s.nextCategoryID
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) findByNorm(norm string) *entity.Category {
	for _, c := range r.s.categories {
		if normalizer.Name(c.Name) == norm {
			return c
		}
	}
	return nil
}

func (r *categoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) GetByName(name string) (*entity.Category, error) {
	c := r.findByNorm(normalizer.Name(name))
	if c == nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) Update(category *entity.Category) error {
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	if existing := r.findByNorm(normalizer.Name(category.Name)); existing != nil && existing.ID != category.ID {
		return domain.ErrDuplicateName
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		list = append(list, &cp)
	}
	sortCategories(list)
	return list, nil
}

func (r *categoryRepo) Delete(id int64) error {
	delete(r.s.categories, id)
	return nil
}

type productRepo struct{ s *state }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(product *entity.Product) error {
	// Mismo rechazo que el índice único de la tripleta en PostgreSQL.
	if existing := r.findByTriple(product.Name, product.Category, product.Unit); existing != nil {
		return domain.ErrDuplicateName
	}
	r.s.nextProductID++
	product.ID = r.s.nextProductID
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) findByTriple(name, category, unit string) *entity.Product {
	norm := normalizer.Name(name)
	for _, p := range r.s.products {
		if normalizer.Name(p.Name) == norm && p.Category == category && p.Unit == unit {
			return p
		}
	}
	return nil
}

func (r *productRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate equivale a GetByID: el lock global del Store ya excluye a
// cualquier otra transacción.
func (r *productRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) GetByNameCategoryUnit(name, category, unit string) (*entity.Product, error) {
	p := r.findByTriple(name, category, unit)
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	if existing := r.findByTriple(product.Name, product.Category, product.Unit); existing != nil && existing.ID != product.ID {
		return domain.ErrDuplicateName
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) UpdateCategoryName(oldName, newName string) (int64, error) {
	var affected int64
	for _, p := range r.s.products {
		if p.Category == oldName {
			p.Category = newName
			affected++
		}
	}
	return affected, nil
}

func (r *productRepo) List() ([]*entity.Product, error) {
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	sortProducts(list)
	return list, nil
}

func (r *productRepo) ListByCategory(category string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.Category == category {
			cp := *p
			list = append(list, &cp)
		}
	}
	sortProducts(list)
	return list, nil
}

func (r *productRepo) CountByCategory(category string) (int64, error) {
	var count int64
	for _, p := range r.s.products {
		if p.Category == category {
			count++
		}
	}
	return count, nil
}

func (r *productRepo) ScalePrices(factor decimal.Decimal) (int64, error) {
	var affected int64
	for _, p := range r.s.products {
		p.Price = p.Price.Mul(factor)
		affected++
	}
	return affected, nil
}

func (r *productRepo) ScalePricesByCategory(category string, factor decimal.Decimal) (int64, error) {
	var affected int64
	for _, p := range r.s.products {
		if p.Category == category {
			p.Price = p.Price.Mul(factor)
			affected++
		}
	}
	return affected, nil
}

func (r *productRepo) Delete(id int64) error {
	delete(r.s.products, id)
	return nil
}

type movementRepo struct{ s *state }

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(movement *entity.Movement) error {
	r.s.nextMovementID++
	movement.ID = r.s.nextMovementID
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

// List aprovecha que la tabla es de solo inserción con fechas monótonas: el
// orden de inserción YA es fecha ascendente.
func (r *movementRepo) List() ([]*entity.Movement, error) {
	list := make([]*entity.Movement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		cp := *m
		list = append(list, &cp)
	}
	return list, nil
}

func (r *movementRepo) ListByProductName(name string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductName == name {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}
