package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as known to the remote service. The client never
// mutates products; a LineItem carries the snapshot taken when the item was
// added to the cart.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
}

// LineItem is one cart entry. ID is the cart-entry identity, which is distinct
// from Product.ID: all remove and set-quantity paths address entries by this
// ID, so a cart may hold the same product through separate entries.
type LineItem struct {
	ID        string          `json:"id"`
	Product   Product         `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is unit price times quantity for this entry.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Totals is the derived pricing block of a cart. It is always recomputed from
// the line items, never patched incrementally.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
	DiscountApplied bool            `json:"discount_applied"`
}

// ZeroTotals returns the totals of an empty cart.
func ZeroTotals() Totals {
	return Totals{
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
	}
}

// Cart is the client-side projection of the remote cart. Item order is
// display order only.
type Cart struct {
	ID     string     `json:"id"`
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// EmptyCart returns a cart with no items and zeroed totals.
func EmptyCart() *Cart {
	return &Cart{Items: []LineItem{}, Totals: ZeroTotals()}
}

// Clone deep-copies the cart so snapshots handed to callers cannot alias the
// cached state.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := &Cart{
		ID:     c.ID,
		Items:  make([]LineItem, len(c.Items)),
		Totals: c.Totals,
	}
	copy(out.Items, c.Items)
	return out
}
