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

// stubSaleService returns canned results so the tests can focus on the
// HTTP mapping: request decoding, validation, and status codes.
type stubSaleService struct {
	snapshot *domain.SaleSnapshot
	err      error

	lastCreate  service.CreateSaleParams
	lastAddItem service.AddItemParams
}

func (s *stubSaleService) CreateSale(_ context.Context, params service.CreateSaleParams) (*domain.SaleSnapshot, error) {
	s.lastCreate = params
	return s.snapshot, s.err
}

func (s *stubSaleService) GetSale(context.Context, string) (*domain.SaleSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubSaleService) ListSales(context.Context) ([]domain.SaleSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.SaleSnapshot{*s.snapshot}, nil
}

func (s *stubSaleService) AddItem(_ context.Context, _ string, params service.AddItemParams) (*domain.SaleSnapshot, error) {
	s.lastAddItem = params
	return s.snapshot, s.err
}

func (s *stubSaleService) RemoveItem(context.Context, string, string) (*domain.SaleSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubSaleService) CancelSale(context.Context, string) (*domain.SaleSnapshot, error) {
	return s.snapshot, s.err
}

func testSnapshot() *domain.SaleSnapshot {
	return &domain.SaleSnapshot{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Ada Lovelace",
		BranchID:     uuid.New(),
		BranchName:   "Downtown",
		Status:       domain.SaleStatusActive,
		TotalAmount:  decimal.Zero,
		Items:        []domain.SaleItem{},
	}
}

func newSaleTestServer(svc service.SaleService) *router.Router {
	h := NewSaleHandler(svc, nil)
	r := router.New()
	r.Post("/api/v1/sales", h.Create)
	r.Get("/api/v1/sales", h.List)
	r.Get("/api/v1/sales/{id}", h.Get)
	r.Delete("/api/v1/sales/{id}", h.Cancel)
	r.Post("/api/v1/sales/{id}/items", h.AddItem)
	r.Delete("/api/v1/sales/{id}/items/{itemID}", h.RemoveItem)
	return r
}

func TestSaleHandler_Create(t *testing.T) {
	validBody := `{
		"customer_id": "` + uuid.New().String() + `",
		"customer_name": "Ada Lovelace",
		"branch_id": "` + uuid.New().String() + `",
		"branch_name": "Downtown"
	}`

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "valid request returns 201",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed JSON returns 400",
			body:       `{"customer_id":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing customer name returns 400",
			body:       `{"customer_id": "` + uuid.New().String() + `", "branch_id": "` + uuid.New().String() + `", "branch_name": "Downtown"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-uuid customer id returns 400",
			body:       `{"customer_id": "not-a-uuid", "customer_name": "Ada", "branch_id": "` + uuid.New().String() + `", "branch_name": "Downtown"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field returns 400",
			body:       `{"customer_id": "` + uuid.New().String() + `", "customer_name": "Ada", "branch_id": "` + uuid.New().String() + `", "branch_name": "Downtown", "discount": 50}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "service internal error returns 500",
			body:       validBody,
			serviceErr: domain.Internal(nil, "sale.create", "failed to save sale"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSaleService{snapshot: testSnapshot(), err: tt.serviceErr}
			srv := newSaleTestServer(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestSaleHandler_Create_RejectsBadTimestamp(t *testing.T) {
	svc := &stubSaleService{snapshot: testSnapshot()}
	srv := newSaleTestServer(svc)

	body := `{
		"customer_id": "` + uuid.New().String() + `",
		"customer_name": "Ada",
		"branch_id": "` + uuid.New().String() + `",
		"branch_name": "Downtown",
		"created_at": "yesterday"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, "created_at must be RFC 3339")
}

func TestSaleHandler_Get(t *testing.T) {
	t.Run("found returns 200 with body", func(t *testing.T) {
		snap := testSnapshot()
		svc := &stubSaleService{snapshot: snap}
		srv := newSaleTestServer(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/"+snap.ID.String(), nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.SaleSnapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, snap.ID, got.ID)
		assert.Equal(t, domain.SaleStatusActive, got.Status)
	})

	t.Run("not found returns 404", func(t *testing.T) {
		svc := &stubSaleService{err: domain.ErrSaleNotFound}
		srv := newSaleTestServer(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/"+uuid.New().String(), nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.ENOTFOUND, resp.Error.Code)
	})
}

func TestSaleHandler_AddItem(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "valid item returns 200",
			body:       `{"product_id": "` + uuid.New().String() + `", "quantity": 4}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "zero quantity fails validation",
			body:       `{"product_id": "` + uuid.New().String() + `", "quantity": 0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing product id fails validation",
			body:       `{"quantity": 4}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "quantity above range is rejected by the domain",
			body:       `{"product_id": "` + uuid.New().String() + `", "quantity": 25}`,
			serviceErr: domain.ErrQuantityOutOfRange,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "cancelled sale returns 409",
			body:       `{"product_id": "` + uuid.New().String() + `", "quantity": 4}`,
			serviceErr: domain.ErrSaleCancelled,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSaleService{snapshot: testSnapshot(), err: tt.serviceErr}
			srv := newSaleTestServer(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/"+uuid.New().String()+"/items", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSaleHandler_RemoveItem_PassesPathValues(t *testing.T) {
	svc := &stubSaleService{snapshot: testSnapshot()}
	srv := newSaleTestServer(svc)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/sales/"+uuid.New().String()+"/items/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSaleHandler_Cancel(t *testing.T) {
	snap := testSnapshot()
	snap.Status = domain.SaleStatusCancelled
	svc := &stubSaleService{snapshot: snap}
	srv := newSaleTestServer(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sales/"+snap.ID.String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.SaleSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.SaleStatusCancelled, got.Status)
}
