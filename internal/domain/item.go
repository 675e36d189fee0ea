package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrQuantityOutOfRange is returned when a sale item is requested with a
// quantity outside the allowed [MinItemQuantity, MaxItemQuantity] range.
var ErrQuantityOutOfRange = &Error{
	Code:    EINVALID,
	Message: fmt.Sprintf("Item quantity must be between %d and %d", MinItemQuantity, MaxItemQuantity),
}

// SaleItem is one priced product line within a sale. Items are immutable
// after construction: a quantity or price change means removing the item and
// adding a new one through the owning sale.
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_percentage"`
	Total       decimal.Decimal `json:"total_amount"`
}

// newSaleItem builds a priced line item. The quantity bounds check runs
// before the discount table is consulted, so ErrUnpriceableQuantity should be
// unreachable through this path. Total is computed once, with decimal
// arithmetic, as quantity * unitPrice * (1 - discount).
func newSaleItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (SaleItem, error) {
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return SaleItem{}, ErrQuantityOutOfRange
	}

	discount, err := DiscountForQuantity(quantity)
	if err != nil {
		return SaleItem{}, err
	}

	qty := decimal.NewFromInt(int64(quantity))
	total := qty.Mul(unitPrice).Mul(decimal.NewFromInt(1).Sub(discount))

	return SaleItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		DiscountPct: discount,
		Total:       total,
	}, nil
}

// RestoreSaleItem rebuilds a persisted line item verbatim. It performs no
// validation and recomputes nothing; it exists for repositories rehydrating
// state that already passed through newSaleItem.
func RestoreSaleItem(id, productID uuid.UUID, productName string, quantity int, unitPrice, discountPct, total decimal.Decimal) SaleItem {
	return SaleItem{
		ID:          id,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		DiscountPct: discountPct,
		Total:       total,
	}
}
