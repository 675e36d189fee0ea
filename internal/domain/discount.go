package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity bounds enforced on every sale item. The lower bound is owned by
// the item constructor; the discount table only guards its own ceiling.
const (
	MinItemQuantity = 1
	MaxItemQuantity = 20
)

// ErrUnpriceableQuantity is returned when the discount table is asked for a
// quantity above MaxItemQuantity. The table never clamps or defaults; callers
// are expected to have bounds-checked first, so seeing this error means a
// check upstream was skipped.
var ErrUnpriceableQuantity = &Error{
	Code:    EINVALID,
	Message: fmt.Sprintf("No discount tier covers quantities above %d", MaxItemQuantity),
}

// discountTier maps quantities strictly below limit to a discount rate.
type discountTier struct {
	limit int
	rate  decimal.Decimal
}

// discountTiers is evaluated in order, first match wins. New tiers are added
// by inserting rows; the limits must stay strictly increasing.
var discountTiers = []discountTier{
	{limit: 4, rate: decimal.Zero},                          // 1-3: no discount
	{limit: 10, rate: decimal.New(10, -2)},                  // 4-9: 10%
	{limit: MaxItemQuantity + 1, rate: decimal.New(20, -2)}, // 10-20: 20%
}

// DiscountForQuantity returns the discount rate for the given item quantity.
// It is a pure function over the tier table and is safe for concurrent use.
// Quantities above MaxItemQuantity fail with ErrUnpriceableQuantity; inputs
// below MinItemQuantity are assumed to be rejected by the caller.
func DiscountForQuantity(quantity int) (decimal.Decimal, error) {
	for _, tier := range discountTiers {
		if quantity < tier.limit {
			return tier.rate, nil
		}
	}
	return decimal.Decimal{}, ErrUnpriceableQuantity
}
