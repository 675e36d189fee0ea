package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

// Product is a catalog entry. Sales denormalize the product name and price
// into their line items at add time, so later catalog edits never rewrite
// history.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProduct creates a catalog product with a fresh identity.
func NewProduct(name, description string, unitPrice decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Invalid("product.create", "product name is required")
	}
	if !unitPrice.IsPositive() {
		return nil, Invalid("product.create", "unit price must be positive")
	}

	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
