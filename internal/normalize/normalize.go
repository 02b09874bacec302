// Package normalize coerces the loosely typed numeric fields the remote
// service emits into definite values. The upstream serializer sends prices and
// quantities as numbers or numeric strings depending on which code path wrote
// them, and occasionally omits them; this package is the single place that
// tolerates those shapes.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
)

// Price coerces a raw price field to a decimal. Numbers and numeric strings
// parse; null, absent and garbage fall back to zero. Negative values pass
// through unchanged: upstream data is permissive here and rejecting it is not
// this layer's call.
func Price(raw json.RawMessage) decimal.Decimal {
	s, ok := scalar(raw)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Quantity coerces a raw quantity field to an integer, falling back to 1 when
// the value is missing or unparseable. Fractional numbers truncate. The result
// is what the UI displays; a user-entered quantity of zero or less is a
// removal, which is the synchronizer's concern, not a clamping case here.
func Quantity(raw json.RawMessage) int {
	s, ok := scalar(raw)
	if !ok {
		return 1
	}
	if n, err := strconv.Atoi(s); err == nil {
		return clamp(n)
	}
	// ParseFloat accepts "Infinity" and "NaN", and int(f) is
	// implementation-defined once f leaves the int range, so non-finite and
	// out-of-range values fall back explicitly instead of being converted.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt32 || f > math.MaxInt32 {
			return 1
		}
		return clamp(int(f))
	}
	return 1
}

func clamp(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Items converts raw line items to domain line items. Entries without a
// product reference cannot be rendered or priced and are dropped silently.
// Display order is preserved.
func Items(raw []remote.RawLineItem) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(raw))
	for _, entry := range raw {
		if entry.Product == nil {
			continue
		}
		price := Price(entry.Price)
		items = append(items, domain.LineItem{
			ID: entry.ID,
			Product: domain.Product{
				ID:          entry.Product.ID,
				Name:        entry.Product.Name,
				Description: entry.Product.Description,
				Category:    entry.Product.Category,
				Price:       Price(entry.Product.Price),
				Active:      entry.Product.IsActive,
			},
			UnitPrice: price,
			Quantity:  Quantity(entry.Quantity),
		})
	}
	return items
}

// scalar unwraps a raw JSON value to the string form of its number, accepting
// both bare numbers and quoted numeric strings.
func scalar(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", false
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	return trimmed, true
}
