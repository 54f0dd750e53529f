package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/normalizer"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, price, unit, quantity, minimum, maximum, category, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). La columna category guarda el NOMBRE de la
// categoría (desnormalización que asumen las consultas de reportes); el
// rename de categoría la reescribe vía UpdateCategoryName. name_norm lleva
// la forma canónica del nombre para la unicidad de la tripleta.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Unit, &p.Quantity, &p.Minimum, &p.Maximum,
		&p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto y asigna el ID generado.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (name, name_norm, price, unit, quantity, minimum, maximum, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, normalizer.Name(product.Name), product.Price, product.Unit,
		product.Quantity, product.Minimum, product.Maximum, product.Category,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate lee el producto con bloqueo de fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción: el bloqueo serializa las
// secuencias leer-luego-escribir concurrentes sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// GetByNameCategoryUnit busca por la tripleta (nombre normalizado, categoría, unidad).
func (r *ProductRepo) GetByNameCategoryUnit(name, category, unit string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE name_norm = $1 AND category = $2 AND unit = $3`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, normalizer.Name(name), category, unit))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name/category/unit: %w", err)
	}
	return p, nil
}

// Update reescribe el producto completo (salvo created_at).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, name_norm = $3, price = $4, unit = $5, quantity = $6,
		    minimum = $7, maximum = $8, category = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, normalizer.Name(product.Name), product.Price, product.Unit,
		product.Quantity, product.Minimum, product.Maximum, product.Category, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateCategoryName reescribe la categoría desnormalizada en todos los
// productos que apuntan a oldName. Devuelve las filas afectadas para que el
// caso de uso verifique que el rename cubrió todos los dependientes.
func (r *ProductRepo) UpdateCategoryName(oldName, newName string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET category = $2, updated_at = now() WHERE category = $1`,
		oldName, newName,
	)
	if err != nil {
		return 0, fmt.Errorf("update product category name: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List lista todos los productos ordenados por nombre ascendente.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC`
	return r.queryMany(query)
}

// ListByCategory lista los productos de una categoría ordenados por nombre.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY name ASC`
	return r.queryMany(query, category)
}

func (r *ProductRepo) queryMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByCategory cuenta los productos que referencian a la categoría.
func (r *ProductRepo) CountByCategory(category string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE category = $1`, category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// ScalePrices multiplica todos los precios por factor en una sola sentencia.
func (r *ProductRepo) ScalePrices(factor decimal.Decimal) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET price = price * $1, updated_at = now()`, factor,
	)
	if err != nil {
		return 0, fmt.Errorf("scale prices: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ScalePricesByCategory multiplica los precios de una categoría por factor.
func (r *ProductRepo) ScalePricesByCategory(category string, factor decimal.Decimal) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET price = price * $1, updated_at = now() WHERE category = $2`,
		factor, category,
	)
	if err != nil {
		return 0, fmt.Errorf("scale prices by category: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
