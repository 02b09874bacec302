package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

func item(id string, price int64, qty int) domain.LineItem {
	return domain.LineItem{
		ID:        id,
		Product:   domain.Product{ID: "prod-" + id, Name: "Service " + id},
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func TestAggregate_BundleDiscountApplied(t *testing.T) {
	items := []domain.LineItem{
		item("a", 100, 1),
		item("b", 50, 2),
	}

	totals := Aggregate(items, DefaultBundleDiscount(), true)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(20)), "discount %s", totals.DiscountAmount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(180)), "total %s", totals.Total)
	assert.True(t, totals.DiscountApplied)
}

func TestAggregate_SingleItemNeverDiscounted(t *testing.T) {
	items := []domain.LineItem{item("a", 100, 1)}

	totals := Aggregate(items, DefaultBundleDiscount(), true)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(100)))
	assert.False(t, totals.DiscountApplied)
}

func TestAggregate_ToggleOffSuppressesEligibleDiscount(t *testing.T) {
	items := []domain.LineItem{
		item("a", 100, 1),
		item("b", 50, 2),
	}

	totals := Aggregate(items, DefaultBundleDiscount(), false)

	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
	assert.False(t, totals.DiscountApplied)
}

func TestAggregate_EmptyCart(t *testing.T) {
	totals := Aggregate(nil, DefaultBundleDiscount(), true)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.False(t, totals.DiscountApplied)
}

func TestAggregate_EligibilityCountsDistinctItemsNotQuantity(t *testing.T) {
	// one entry with a big quantity is still a single line item
	items := []domain.LineItem{item("a", 10, 9)}

	totals := Aggregate(items, DefaultBundleDiscount(), true)

	assert.False(t, totals.DiscountApplied)
	assert.True(t, totals.DiscountAmount.IsZero())
}

func TestAggregate_TotalEqualsSubtotalMinusDiscount(t *testing.T) {
	cases := [][]domain.LineItem{
		nil,
		{item("a", 100, 1)},
		{item("a", 100, 1), item("b", 50, 2)},
		{item("a", 33, 3), item("b", 7, 1), item("c", 120, 2)},
	}

	for _, items := range cases {
		for _, toggle := range []bool{true, false} {
			totals := Aggregate(items, DefaultBundleDiscount(), toggle)
			assert.True(t, totals.Total.Equal(totals.Subtotal.Sub(totals.DiscountAmount)))
			assert.True(t, totals.DiscountAmount.GreaterThanOrEqual(decimal.Zero))
			assert.True(t, totals.Total.GreaterThanOrEqual(decimal.Zero))
		}
	}
}
