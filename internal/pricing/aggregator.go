// Package pricing derives cart totals from normalized line items. The
// aggregate is pure: it is recomputed from the item list on every refresh and
// never cached as independent state that could drift from its inputs.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

// BundleDiscount is the one discount the storefront offers: a percentage off
// the subtotal once the cart holds enough distinct line items.
type BundleDiscount struct {
	Rate             decimal.Decimal
	MinDistinctItems int
}

// DefaultBundleDiscount is 10% off for two or more distinct line items.
func DefaultBundleDiscount() BundleDiscount {
	return BundleDiscount{
		Rate:             decimal.NewFromFloat(0.10),
		MinDistinctItems: 2,
	}
}

// Eligible reports whether the item count qualifies for the discount.
// Eligibility counts distinct line items, not total quantity.
func (p BundleDiscount) Eligible(items []domain.LineItem) bool {
	return len(items) >= p.MinDistinctItems
}

// Aggregate computes subtotal, discount and total for the given items. The
// discount applies only when the cart is eligible and the shopper left the
// discount toggle on. An empty cart yields all zeroes with the discount off.
func Aggregate(items []domain.LineItem, policy BundleDiscount, toggle bool) domain.Totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Subtotal())
	}

	applied := policy.Eligible(items) && toggle
	discount := decimal.Zero
	if applied {
		discount = subtotal.Mul(policy.Rate)
	}

	return domain.Totals{
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		Total:           subtotal.Sub(discount),
		DiscountApplied: applied,
	}
}
