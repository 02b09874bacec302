package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/checkout"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

// CheckoutService is what the checkout and order endpoints need from the
// summarizer.
type CheckoutService interface {
	Submit(ctx context.Context, sess domain.Session, summary *domain.OrderSummary) (*domain.Order, error)
	Orders(ctx context.Context, sess domain.Session) ([]*domain.Order, error)
	Order(ctx context.Context, sess domain.Session, orderID string) (*domain.Order, error)
}

type CheckoutHandler struct {
	carts    CartService
	checkout CheckoutService
}

func NewCheckoutHandler(carts CartService, co CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, checkout: co}
}

type OrderResponseDTO struct {
	OrderID   string          `json:"order_id"`
	Status    string          `json:"status"`
	Items     []LineItemDTO   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

func orderDTO(o *domain.Order) OrderResponseDTO {
	items := make([]LineItemDTO, len(o.Items))
	for i, li := range o.Items {
		items[i] = LineItemDTO{
			ID:        li.ID,
			Product:   productDTO(li.Product),
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			LineTotal: li.Subtotal(),
		}
	}
	return OrderResponseDTO{
		OrderID:   o.ID,
		Status:    o.Status.String(),
		Items:     items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}

// Freeze opens a checkout attempt: the current snapshot is copied into an
// immutable summary the dialog renders from. The summary comes back to Submit
// unchanged, so cart mutations between the two calls don't move the figures.
func (h *CheckoutHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	snap, err := h.carts.Snapshot(r.Context(), sess, discountToggle(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if len(snap.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to checkout")
		return
	}

	respondJSON(w, http.StatusOK, checkout.Freeze(snap))
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var summary domain.OrderSummary
	if err := json.NewDecoder(r.Body).Decode(&summary); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(summary.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to checkout")
		return
	}
	if summary.IdempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "missing_idempotency_key", "idempotency_key is required")
		return
	}

	order, err := h.checkout.Submit(r.Context(), sess, &summary)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, orderDTO(order))
}

type OrdersResponseDTO struct {
	Count  int                `json:"count"`
	Orders []OrderResponseDTO `json:"orders"`
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	orders, err := h.checkout.Orders(r.Context(), sess)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, len(orders))
	for i, o := range orders {
		dtos[i] = orderDTO(o)
	}
	respondJSON(w, http.StatusOK, OrdersResponseDTO{Count: len(dtos), Orders: dtos})
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	orderID := chi.URLParam(r, "id")
	order, err := h.checkout.Order(r.Context(), sess, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderDTO(order))
}
