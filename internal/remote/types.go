package remote

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

// Wire shapes as the remote service actually sends them. Numeric fields arrive
// as either JSON numbers or numeric strings depending on the upstream code
// path, so they stay json.RawMessage here and are coerced by the normalize
// package. Server-reported totals are carried but ignored; the gateway always
// recomputes them from the items.

type RawProduct struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       json.RawMessage `json:"price"`
	IsActive    bool            `json:"isActive"`
}

type RawLineItem struct {
	ID       string          `json:"_id"`
	Product  *RawProduct     `json:"productId"`
	Price    json.RawMessage `json:"price"`
	Quantity json.RawMessage `json:"quantity"`
}

type RawCart struct {
	ID              string          `json:"_id"`
	Items           []RawLineItem   `json:"items"`
	Subtotal        json.RawMessage `json:"subtotal"`
	DiscountAmount  json.RawMessage `json:"discountAmount"`
	DiscountApplied bool            `json:"discountApplied"`
	Total           json.RawMessage `json:"total"`
}

type RawOrderItem struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Product  *RawProduct     `json:"productId"`
	Price    json.RawMessage `json:"price"`
	Quantity json.RawMessage `json:"quantity"`
}

type RawOrder struct {
	OrderID   string          `json:"orderId"`
	Status    string          `json:"status"`
	Items     []RawOrderItem  `json:"items"`
	Total     json.RawMessage `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CheckoutItem and CheckoutRequest are the outbound checkout payload. The
// remote endpoint expects the frozen summary under an "orderSummary" key.
type CheckoutItem struct {
	ID        string          `json:"_id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type CheckoutSummary struct {
	Items           []CheckoutItem  `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	BundleDiscount  decimal.Decimal `json:"bundleDiscount"`
	Total           decimal.Decimal `json:"total"`
	DiscountApplied bool            `json:"discountApplied"`
	IdempotencyKey  string          `json:"idempotencyKey"`
}

type CheckoutRequest struct {
	OrderSummary CheckoutSummary `json:"orderSummary"`
}

// NewCheckoutRequest maps a frozen OrderSummary onto the wire payload.
func NewCheckoutRequest(summary *domain.OrderSummary) CheckoutRequest {
	items := make([]CheckoutItem, len(summary.Items))
	for i, li := range summary.Items {
		items[i] = CheckoutItem{
			ID:        li.ID,
			ProductID: li.Product.ID,
			Name:      li.Product.Name,
			Price:     li.UnitPrice,
			Quantity:  li.Quantity,
		}
	}
	return CheckoutRequest{OrderSummary: CheckoutSummary{
		Items:           items,
		Subtotal:        summary.Subtotal,
		BundleDiscount:  summary.BundleDiscount,
		Total:           summary.Total,
		DiscountApplied: summary.DiscountApplied,
		IdempotencyKey:  summary.IdempotencyKey,
	}}
}
