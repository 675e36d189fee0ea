package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostlund/vanir/internal/domain"
	"github.com/ostlund/vanir/internal/router"
	"github.com/ostlund/vanir/internal/service"
)

func mustPrice(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type stubProductService struct {
	product *domain.Product
	err     error

	lastCreate service.CreateProductParams
	deleted    []string
}

func (s *stubProductService) CreateProduct(_ context.Context, params service.CreateProductParams) (*domain.Product, error) {
	s.lastCreate = params
	return s.product, s.err
}

func (s *stubProductService) GetProduct(context.Context, string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) ListProducts(context.Context) ([]*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Product{s.product}, nil
}

func (s *stubProductService) DeleteProduct(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func newProductTestServer(svc service.ProductService) *router.Router {
	h := NewProductHandler(svc, nil)
	r := router.New()
	r.Post("/api/v1/products", h.Create)
	r.Get("/api/v1/products", h.List)
	r.Get("/api/v1/products/{id}", h.Get)
	r.Delete("/api/v1/products/{id}", h.Delete)
	return r
}

func TestProductHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "valid product returns 201",
			body:       `{"name": "Espresso Beans", "description": "Dark roast", "unit_price": "12.50"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name returns 400",
			body:       `{"unit_price": "12.50"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unparseable price returns 400",
			body:       `{"name": "Espresso Beans", "unit_price": "twelve"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative price rejected by the domain",
			body:       `{"name": "Espresso Beans", "unit_price": "-1.00"}`,
			serviceErr: domain.Invalid("product.create", "unit price must be positive"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := domain.NewProduct("Espresso Beans", "Dark roast", mustPrice(t, "12.50"))
			require.NoError(t, err)

			svc := &stubProductService{product: product, err: tt.serviceErr}
			srv := newProductTestServer(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	svc := &stubProductService{err: domain.ErrProductNotFound}
	srv := newProductTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	svc := &stubProductService{}
	srv := newProductTestServer(svc)

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+id, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, svc.deleted, 1)
	assert.Equal(t, id, svc.deleted[0])
}

func TestProductHandler_List(t *testing.T) {
	product, err := domain.NewProduct("Espresso Beans", "", mustPrice(t, "12.50"))
	require.NoError(t, err)

	svc := &stubProductService{product: product}
	srv := newProductTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Espresso Beans", got[0].Name)
}
