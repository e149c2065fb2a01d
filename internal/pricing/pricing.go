// AngelaMos | 2026
// pricing.go

package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/herooiboo/tenjaz/internal/user"
)

// Calculator derives the price shown to a viewer from a product's base
// price and the viewer's tier discount. Base prices in storage are
// never modified.
type Calculator struct {
	discounts map[user.Tier]decimal.Decimal
}

// NewCalculator builds a calculator from tier -> discount fractions.
// Every tier must carry a rate in [0, 1); a full-price tier is an
// explicit zero, not an absent entry.
func NewCalculator(discounts map[string]float64) (*Calculator, error) {
	rates := make(map[user.Tier]decimal.Decimal, len(discounts))
	for name, rate := range discounts {
		tier, err := user.ParseTier(name)
		if err != nil {
			return nil, fmt.Errorf("pricing: unknown tier %q", name)
		}
		if rate < 0 || rate >= 1 {
			return nil, fmt.Errorf("pricing: discount for %q out of range: %v", name, rate)
		}
		rates[tier] = decimal.NewFromFloat(rate)
	}
	for _, tier := range []user.Tier{user.TierBase, user.TierSilver, user.TierGold} {
		if _, ok := rates[tier]; !ok {
			return nil, fmt.Errorf("pricing: no discount configured for tier %q", tier)
		}
	}
	return &Calculator{discounts: rates}, nil
}

// DisplayPrice applies the tier's discount to base and rounds half-up
// to two decimal places. An unknown or empty tier (an anonymous
// viewer) sees the undiscounted price.
func (c *Calculator) DisplayPrice(base decimal.Decimal, tier string) decimal.Decimal {
	parsed, err := user.ParseTier(tier)
	if err != nil {
		return base.Round(2)
	}
	return c.DisplayPriceForTier(base, parsed)
}

func (c *Calculator) DisplayPriceForTier(base decimal.Decimal, tier user.Tier) decimal.Decimal {
	rate, ok := c.discounts[tier]
	if !ok {
		return base.Round(2)
	}
	factor := decimal.NewFromInt(1).Sub(rate)
	return base.Mul(factor).Round(2)
}
