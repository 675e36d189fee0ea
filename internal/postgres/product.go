package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostlund/vanir/internal/domain"
)

// ProductRepository implements domain.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// Compile-time check that ProductRepository implements domain.ProductRepository.
var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, unit_price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		product.ID, product.Name, product.Description,
		product.UnitPrice.String(), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, description, unit_price::text, created_at, updated_at
		 FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, unit_price::text, created_at, updated_at
		 FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product   domain.Product
		unitPrice string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&product.ID, &product.Name, &product.Description, &unitPrice, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	price, err := parseDecimal(unitPrice)
	if err != nil {
		return nil, err
	}

	product.UnitPrice = price
	product.CreatedAt = createdAt
	product.UpdatedAt = updatedAt
	return &product, nil
}
