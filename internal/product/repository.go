// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/herooiboo/tenjaz/internal/core"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	FindByField(ctx context.Context, field, value string) (*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListParams) ([]Product, int, error)
	GetAll(ctx context.Context) ([]Product, error)
}

// Columns a product may be looked up by. FindByField interpolates the
// column name, so anything outside this set is rejected.
var lookupColumns = map[string]string{
	"slug": "slug",
	"name": "name",
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, image, slug, is_active,
	       created_at, updated_at`

func (r *repository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (name, description, price, image, slug, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Image,
		product.Slug,
		product.IsActive,
	)

	if err := row.Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create product: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1`, productColumns)

	var product Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

func (r *repository) FindByField(
	ctx context.Context,
	field, value string,
) (*Product, error) {
	column, ok := lookupColumns[field]
	if !ok {
		return nil, fmt.Errorf(
			"find product: field %q not allowed: %w",
			field,
			core.ErrInvalidInput,
		)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s = $1`, productColumns, column)

	var product Product
	err := r.db.GetContext(ctx, &product, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find product by %s: %w", field, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find product by %s: %w", field, err)
	}

	return &product, nil
}

func (r *repository) Update(ctx context.Context, product *Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, image = $5,
		    slug = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &product.UpdatedAt, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Image,
		product.Slug,
		product.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update product: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Product, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM products`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, productColumns)

	var products []Product
	err := r.db.SelectContext(ctx, &products, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at DESC`, productColumns)

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("get all products: %w", err)
	}

	return products, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
