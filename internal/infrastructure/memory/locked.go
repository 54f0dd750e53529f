package memory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Variantes con locking propio para lecturas fuera de Store.Run. Cada método
// toma el lock del Store y delega en el repositorio crudo.

type lockedCategoryRepo struct{ store *Store }

var _ repository.CategoryRepository = (*lockedCategoryRepo)(nil)

func (r *lockedCategoryRepo) Create(c *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&categoryRepo{r.store.data}).Create(c)
}

func (r *lockedCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&categoryRepo{r.store.data}).GetByID(id)
}

func (r *lockedCategoryRepo) GetByName(name string) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&categoryRepo{r.store.data}).GetByName(name)
}

func (r *lockedCategoryRepo) Update(c *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&categoryRepo{r.store.data}).Update(c)
}

func (r *lockedCategoryRepo) List() ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&categoryRepo{r.store.data}).List()
}

func (r *lockedCategoryRepo) Delete(id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&categoryRepo{r.store.data}).Delete(id)
}

type lockedProductRepo struct{ store *Store }

var _ repository.ProductRepository = (*lockedProductRepo)(nil)

func (r *lockedProductRepo) Create(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).Create(p)
}

func (r *lockedProductRepo) GetByID(id int64) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).GetByID(id)
}

func (r *lockedProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).GetForUpdate(id)
}

func (r *lockedProductRepo) GetByNameCategoryUnit(name, category, unit string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).GetByNameCategoryUnit(name, category, unit)
}

func (r *lockedProductRepo) Update(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).Update(p)
}

func (r *lockedProductRepo) UpdateCategoryName(oldName, newName string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).UpdateCategoryName(oldName, newName)
}

func (r *lockedProductRepo) List() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).List()
}

func (r *lockedProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).ListByCategory(category)
}

func (r *lockedProductRepo) CountByCategory(category string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).CountByCategory(category)
}

func (r *lockedProductRepo) ScalePrices(factor decimal.Decimal) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).ScalePrices(factor)
}

func (r *lockedProductRepo) ScalePricesByCategory(category string, factor decimal.Decimal) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).ScalePricesByCategory(category, factor)
}

func (r *lockedProductRepo) Delete(id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&productRepo{r.store.data}).Delete(id)
}

type lockedMovementRepo struct{ store *Store }

var _ repository.MovementRepository = (*lockedMovementRepo)(nil)

func (r *lockedMovementRepo) Create(m *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&movementRepo{r.store.data}).Create(m)
}

func (r *lockedMovementRepo) List() ([]*entity.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&movementRepo{r.store.data}).List()
}

func (r *lockedMovementRepo) ListByProductName(name string) ([]*entity.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&movementRepo{r.store.data}).ListByProductName(name)
}
