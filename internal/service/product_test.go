package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostlund/vanir/internal/domain"
	"github.com/ostlund/vanir/internal/telemetry"
)

func newProductService(t *testing.T) (ProductService, *fakeProductRepo) {
	t.Helper()

	repo := newFakeProductRepo()
	metrics := telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())
	return NewProductService(repo, metrics), repo
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc, _ := newProductService(t)

	created, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Name:        "Widget",
		Description: "A standard widget",
		UnitPrice:   decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	fetched, err := svc.GetProduct(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Widget", fetched.Name)
	assert.True(t, fetched.UnitPrice.Equal(decimal.RequireFromString("10.00")))
}

func TestProductService_CreateRejectsBadInput(t *testing.T) {
	svc, repo := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Name:      "  ",
		UnitPrice: decimal.RequireFromString("10.00"),
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.CreateProduct(context.Background(), CreateProductParams{
		Name:      "Widget",
		UnitPrice: decimal.Zero,
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	assert.Empty(t, repo.products)
}

func TestProductService_Delete(t *testing.T) {
	svc, repo := newProductService(t)

	created, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Name:      "Widget",
		UnitPrice: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID.String()))
	assert.Empty(t, repo.products)

	err = svc.DeleteProduct(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
