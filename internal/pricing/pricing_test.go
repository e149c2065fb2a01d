// AngelaMos | 2026
// pricing_test.go

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiscounts() map[string]float64 {
	return map[string]float64{
		"base":   0,
		"silver": 0.10,
		"gold":   0.15,
	}
}

func TestDisplayPrice_PerTier(t *testing.T) {
	calc, err := NewCalculator(testDiscounts())
	require.NoError(t, err)

	base := decimal.NewFromInt(100)

	tests := []struct {
		tier string
		want string
	}{
		{"base", "100.00"},
		{"silver", "90.00"},
		{"gold", "85.00"},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			got := calc.DisplayPrice(base, tt.tier)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestDisplayPrice_RoundsHalfUp(t *testing.T) {
	calc, err := NewCalculator(testDiscounts())
	require.NoError(t, err)

	// 33.33 * 0.90 = 29.997, which rounds up to 30.00.
	got := calc.DisplayPrice(decimal.RequireFromString("33.33"), "silver")
	assert.Equal(t, "30.00", got.StringFixed(2))

	// 99.99 * 0.85 = 84.9915, which rounds down to 84.99.
	got = calc.DisplayPrice(decimal.RequireFromString("99.99"), "gold")
	assert.Equal(t, "84.99", got.StringFixed(2))

	// An exact half rounds away from zero.
	got = calc.DisplayPrice(decimal.RequireFromString("10.005"), "base")
	assert.Equal(t, "10.01", got.StringFixed(2))
}

func TestDisplayPrice_AnonymousSeesBasePrice(t *testing.T) {
	calc, err := NewCalculator(testDiscounts())
	require.NoError(t, err)

	base := decimal.RequireFromString("49.95")

	assert.Equal(t, "49.95", calc.DisplayPrice(base, "").StringFixed(2))
	assert.Equal(t, "49.95", calc.DisplayPrice(base, "platinum").StringFixed(2))
}

func TestDisplayPrice_DoesNotMutateBase(t *testing.T) {
	calc, err := NewCalculator(testDiscounts())
	require.NoError(t, err)

	base := decimal.NewFromInt(100)
	_ = calc.DisplayPrice(base, "gold")

	assert.True(t, base.Equal(decimal.NewFromInt(100)))
}

func TestNewCalculator_Validation(t *testing.T) {
	tests := []struct {
		name      string
		discounts map[string]float64
	}{
		{
			name: "unknown tier",
			discounts: map[string]float64{
				"base": 0, "silver": 0.10, "gold": 0.15, "platinum": 0.5,
			},
		},
		{
			name: "rate at one",
			discounts: map[string]float64{
				"base": 0, "silver": 0.10, "gold": 1.0,
			},
		},
		{
			name: "negative rate",
			discounts: map[string]float64{
				"base": 0, "silver": -0.10, "gold": 0.15,
			},
		},
		{
			name: "missing tier",
			discounts: map[string]float64{
				"base": 0, "silver": 0.10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalculator(tt.discounts)
			assert.Error(t, err)
		})
	}
}
