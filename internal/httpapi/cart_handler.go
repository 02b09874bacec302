package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

// CartService is what the cart endpoints need from the synchronizer.
type CartService interface {
	Snapshot(ctx context.Context, sess domain.Session, applyDiscount bool) (*domain.Cart, error)
	Refresh(ctx context.Context, sess domain.Session, applyDiscount bool) (*domain.Cart, error)
	Add(ctx context.Context, sess domain.Session, productID string, applyDiscount bool) (*domain.Cart, error)
	Remove(ctx context.Context, sess domain.Session, lineItemID string, applyDiscount bool) (*domain.Cart, error)
	SetQuantity(ctx context.Context, sess domain.Session, lineItemID string, quantity int, applyDiscount bool) (*domain.Cart, error)
	Clear(ctx context.Context, sess domain.Session) (*domain.Cart, error)
}

type CartHandler struct {
	carts CartService
}

func NewCartHandler(carts CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type LineItemDTO struct {
	ID        string          `json:"id"`
	Product   ProductDTO      `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponseDTO struct {
	ID              string          `json:"id"`
	Items           []LineItemDTO   `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
	DiscountApplied bool            `json:"discount_applied"`
}

func cartDTO(c *domain.Cart) CartResponseDTO {
	items := make([]LineItemDTO, len(c.Items))
	for i, li := range c.Items {
		items[i] = LineItemDTO{
			ID:        li.ID,
			Product:   productDTO(li.Product),
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			LineTotal: li.Subtotal(),
		}
	}
	return CartResponseDTO{
		ID:              c.ID,
		Items:           items,
		Subtotal:        c.Totals.Subtotal,
		DiscountAmount:  c.Totals.DiscountAmount,
		Total:           c.Totals.Total,
		DiscountApplied: c.Totals.DiscountApplied,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	snap, err := h.carts.Snapshot(r.Context(), sess, discountToggle(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartDTO(snap))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	snap, err := h.carts.Add(r.Context(), sess, req.ProductID, discountToggle(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartDTO(snap))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// zero or negative quantity is a removal, handled by the synchronizer
	snap, err := h.carts.SetQuantity(r.Context(), sess, itemID, req.Quantity, discountToggle(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartDTO(snap))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	snap, err := h.carts.Remove(r.Context(), sess, itemID, discountToggle(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartDTO(snap))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	snap, err := h.carts.Clear(r.Context(), sess)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartDTO(snap))
}
