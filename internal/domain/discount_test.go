package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostlund/vanir/internal/domain"
)

func TestDiscountForQuantity_TierBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		expected    string
		explanation string
	}{
		{
			name:        "single unit",
			quantity:    1,
			expected:    "0",
			explanation: "quantities below 4 are sold at full price",
		},
		{
			name:        "last quantity below first paid tier",
			quantity:    3,
			expected:    "0",
			explanation: "3 is the upper edge of the no-discount tier",
		},
		{
			name:        "first quantity of the 10% tier",
			quantity:    4,
			expected:    "0.1",
			explanation: "4-9 units earn 10%",
		},
		{
			name:        "last quantity of the 10% tier",
			quantity:    9,
			expected:    "0.1",
			explanation: "9 is the upper edge of the 10% tier",
		},
		{
			name:        "first quantity of the 20% tier",
			quantity:    10,
			expected:    "0.2",
			explanation: "10-20 units earn 20%",
		},
		{
			name:        "maximum allowed quantity",
			quantity:    20,
			expected:    "0.2",
			explanation: "20 is still priced, at 20%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := domain.DiscountForQuantity(tt.quantity)

			require.NoError(t, err)
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, rate.Equal(expected),
				"quantity %d: expected rate %s, got %s (%s)", tt.quantity, expected, rate, tt.explanation)
		})
	}
}

func TestDiscountForQuantity_EveryQuantityInRange(t *testing.T) {
	// The whole supported domain, spelled out so a tier edit that shifts a
	// boundary fails loudly.
	for q := 1; q <= 20; q++ {
		rate, err := domain.DiscountForQuantity(q)
		require.NoError(t, err, "quantity %d must be priceable", q)

		switch {
		case q < 4:
			assert.True(t, rate.IsZero(), "quantity %d should have no discount, got %s", q, rate)
		case q < 10:
			assert.True(t, rate.Equal(decimal.New(10, -2)), "quantity %d should earn 10%%, got %s", q, rate)
		default:
			assert.True(t, rate.Equal(decimal.New(20, -2)), "quantity %d should earn 20%%, got %s", q, rate)
		}
	}
}

func TestDiscountForQuantity_AboveCeiling(t *testing.T) {
	for _, q := range []int{21, 100, 1 << 20} {
		rate, err := domain.DiscountForQuantity(q)

		assert.ErrorIs(t, err, domain.ErrUnpriceableQuantity, "quantity %d must be rejected, not clamped", q)
		assert.True(t, rate.IsZero(), "rejected quantity must not return a rate")
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
}
