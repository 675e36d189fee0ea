package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ostlund/vanir/internal/service"
)

// SaleHandler serves the sale endpoints.
type SaleHandler struct {
	sales  service.SaleService
	logger *slog.Logger
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(sales service.SaleService, logger *slog.Logger) *SaleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaleHandler{
		sales:  sales,
		logger: logger,
	}
}

type createSaleRequest struct {
	CustomerID   string `json:"customer_id" validate:"required,uuid"`
	CustomerName string `json:"customer_name" validate:"required"`
	BranchID     string `json:"branch_id" validate:"required,uuid"`
	BranchName   string `json:"branch_name" validate:"required"`

	// CreatedAt is optional; RFC 3339. Omitted means "now".
	CreatedAt string `json:"created_at" validate:"omitempty"`
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// Create handles POST /api/v1/sales
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	var createdAt time.Time
	if req.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.CreatedAt)
		if err != nil {
			writeError(w, r, invalidField("sale.create", "created_at", req.CreatedAt))
			return
		}
		createdAt = parsed
	}

	sale, err := h.sales.CreateSale(r.Context(), service.CreateSaleParams{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		BranchID:     req.BranchID,
		BranchName:   req.BranchName,
		CreatedAt:    createdAt,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sale)
}

// Get handles GET /api/v1/sales/{id}
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.GetSale(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.ListSales(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sales)
}

// AddItem handles POST /api/v1/sales/{id}/items
func (h *SaleHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	sale, err := h.sales.AddItem(r.Context(), r.PathValue("id"), service.AddItemParams{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// RemoveItem handles DELETE /api/v1/sales/{id}/items/{itemID}
func (h *SaleHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.RemoveItem(r.Context(), r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// Cancel handles DELETE /api/v1/sales/{id}
func (h *SaleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.CancelSale(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}
