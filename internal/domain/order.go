package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderSummary is the cart frozen at checkout initiation. It is built exactly
// once per checkout attempt and never updated afterwards, even while the live
// cart keeps changing.
type OrderSummary struct {
	Items           []LineItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	BundleDiscount  decimal.Decimal `json:"bundle_discount"`
	Total           decimal.Decimal `json:"total"`
	DiscountApplied bool            `json:"discount_applied"`
	IdempotencyKey  string          `json:"idempotency_key"`
	CapturedAt      time.Time       `json:"captured_at"`
}

// Order is owned and mutated by the remote service; the client only reads it.
// The status enumeration is open: unrecognized values pass through untouched.
type Order struct {
	ID        string          `json:"id"`
	Status    OrderStatus     `json:"status"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
