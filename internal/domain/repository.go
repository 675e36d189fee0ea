package domain

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository persists sale aggregates. Implementations return
// ErrSaleNotFound when the id does not exist.
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	Get(ctx context.Context, id uuid.UUID) (*Sale, error)
	List(ctx context.Context) ([]*Sale, error)

	// Update replaces the stored status and item collection with the
	// aggregate's current state.
	Update(ctx context.Context, sale *Sale) error
}

// ProductRepository persists catalog products. Implementations return
// ErrProductNotFound when the id does not exist.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
