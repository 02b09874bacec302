// Package checkout freezes the live cart into an immutable order summary and
// submits it to the remote checkout endpoint.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/normalize"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
)

// RemoteCheckout is the slice of the remote API used at checkout time and for
// the shopper's order history.
type RemoteCheckout interface {
	Checkout(ctx context.Context, sess domain.Session, req remote.CheckoutRequest) (*remote.RawOrder, error)
	GetOrders(ctx context.Context, sess domain.Session) ([]remote.RawOrder, error)
	GetOrder(ctx context.Context, sess domain.Session, orderID string) (*remote.RawOrder, error)
}

// CartClearer resets the local snapshot once an order went through. The
// remote cart is emptied by the order itself, so no refetch is needed.
type CartClearer interface {
	ClearLocal(ctx context.Context, sess domain.Session) (*domain.Cart, error)
}

// Freeze deep-copies the cart into an OrderSummary. The summary is built once
// per checkout attempt and never reflects later cart mutations: a dialog left
// open keeps displaying the figures it was opened with. The idempotency key is
// generated here so a retried submission of the same summary is the same order.
func Freeze(cart *domain.Cart) *domain.OrderSummary {
	clone := cart.Clone()
	return &domain.OrderSummary{
		Items:           clone.Items,
		Subtotal:        clone.Totals.Subtotal,
		BundleDiscount:  clone.Totals.DiscountAmount,
		Total:           clone.Totals.Total,
		DiscountApplied: clone.Totals.DiscountApplied,
		IdempotencyKey:  uuid.NewString(),
		CapturedAt:      time.Now(),
	}
}

type Summarizer struct {
	remote RemoteCheckout
	carts  CartClearer
	log    *logrus.Entry
}

func NewSummarizer(rc RemoteCheckout, carts CartClearer, log *logrus.Logger) *Summarizer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Summarizer{
		remote: rc,
		carts:  carts,
		log:    log.WithField("component", "checkout"),
	}
}

// Submit hands the frozen summary to the remote checkout endpoint. On success
// the live cart is cleared locally; on failure the cart and the summary are
// both left as they were, and the shopper re-triggers the submission.
func (s *Summarizer) Submit(ctx context.Context, sess domain.Session, summary *domain.OrderSummary) (*domain.Order, error) {
	raw, err := s.remote.Checkout(ctx, sess, remote.NewCheckoutRequest(summary))
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	if _, err := s.carts.ClearLocal(ctx, sess); err != nil {
		s.log.WithError(err).Warn("clearing cart after order failed")
	}
	return toOrder(raw), nil
}

// Orders lists the shopper's placed orders, newest first as the remote
// service returns them.
func (s *Summarizer) Orders(ctx context.Context, sess domain.Session) ([]*domain.Order, error) {
	raw, err := s.remote.GetOrders(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	orders := make([]*domain.Order, len(raw))
	for i := range raw {
		orders[i] = toOrder(&raw[i])
	}
	return orders, nil
}

// Order looks up a placed order by ID.
func (s *Summarizer) Order(ctx context.Context, sess domain.Session, orderID string) (*domain.Order, error) {
	raw, err := s.remote.GetOrder(ctx, sess, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	return toOrder(raw), nil
}

func toOrder(raw *remote.RawOrder) *domain.Order {
	items := make([]domain.LineItem, 0, len(raw.Items))
	for _, entry := range raw.Items {
		li := domain.LineItem{
			ID:        entry.ID,
			UnitPrice: normalize.Price(entry.Price),
			Quantity:  normalize.Quantity(entry.Quantity),
		}
		if entry.Product != nil {
			li.Product = domain.Product{
				ID:          entry.Product.ID,
				Name:        entry.Product.Name,
				Description: entry.Product.Description,
				Category:    entry.Product.Category,
				Price:       normalize.Price(entry.Product.Price),
				Active:      entry.Product.IsActive,
			}
		}
		if li.Product.Name == "" {
			li.Product.Name = entry.Name
		}
		items = append(items, li)
	}

	return &domain.Order{
		ID:        raw.OrderID,
		Status:    domain.OrderStatus(raw.Status),
		Items:     items,
		Total:     normalize.Price(raw.Total),
		CreatedAt: raw.CreatedAt,
	}
}
