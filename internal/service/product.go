package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ostlund/vanir/internal/domain"
	"github.com/ostlund/vanir/internal/telemetry"
)

// ProductService provides business logic for catalog operations.
type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (*domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// CreateProductParams carries the validated request to create a product.
type CreateProductParams struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
}

type productService struct {
	products domain.ProductRepository
	metrics  *telemetry.BusinessMetrics
}

// NewProductService creates a new ProductService instance.
func NewProductService(products domain.ProductRepository, metrics *telemetry.BusinessMetrics) ProductService {
	return &productService{products: products, metrics: metrics}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (*domain.Product, error) {
	product, err := domain.NewProduct(params.Name, params.Description, params.UnitPrice)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, domain.Internal(err, "product.create", "failed to save product")
	}

	s.metrics.ProductsCreated.Inc()
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := parseID("product.get", "product id", productID)
	if err != nil {
		return nil, err
	}
	return s.products.Get(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	return products, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := parseID("product.delete", "product id", productID)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.ProductsDeleted.Inc()
	return nil
}
