package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

const productColumns = `id, name, description, price::float8, photo, category, is_active, created_at, updated_at`

// ProductRepository — каталог на Postgres.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// ListActive — активные товары, новые сначала; category == "" — все категории.
func (r *ProductRepository) ListActive(ctx context.Context, category string) ([]*domain.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = r.pool.Query(ctx, `
			SELECT `+productColumns+` FROM products
			WHERE is_active ORDER BY created_at DESC, id DESC`)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+productColumns+` FROM products
			WHERE is_active AND category = $1 ORDER BY created_at DESC, id DESC`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products rows: %w", err)
	}
	return products, nil
}

// ActiveCategories — category каждого активного товара (с повторами).
func (r *ProductRepository) ActiveCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT category FROM products WHERE is_active ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return errors.New("product is empty")
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, photo, category, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		product.ID, product.Name, product.Description, product.Price,
		product.Photo, product.Category, product.IsActive,
	)
	saved, err := scanProduct(row)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	*product = *saved
	return nil
}

// CreateBatch — вставка пачки товаров одной транзакцией (сидер каталога).
func (r *ProductRepository) CreateBatch(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	rows := make([][]any, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		rows = append(rows, []any{p.ID, p.Name, p.Description, p.Price, p.Photo, p.Category, p.IsActive})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"products"},
		[]string{"id", "name", "description", "price", "photo", "category", "is_active"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy products: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.pool, "products")
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Photo, &p.Category,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
