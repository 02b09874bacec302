package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/normalize"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
)

// Catalog is the read-only product lookup surface of the remote service.
type Catalog interface {
	GetProducts(ctx context.Context) ([]remote.RawProduct, error)
	GetProduct(ctx context.Context, id string) (*remote.RawProduct, error)
	GetProductsByCategory(ctx context.Context, category string) ([]remote.RawProduct, error)
}

type ProductHandler struct {
	catalog Catalog
}

func NewProductHandler(catalog Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type ProductDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
}

type ProductsResponseDTO struct {
	Count    int          `json:"count"`
	Products []ProductDTO `json:"products"`
}

func productDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Active:      p.Active,
	}
}

func rawProductDTO(p remote.RawProduct) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       normalize.Price(p.Price),
		Active:      p.IsActive,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.GetProducts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, productsDTO(raw))
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	raw, err := h.catalog.GetProductsByCategory(r.Context(), category)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, productsDTO(raw))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	raw, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rawProductDTO(*raw))
}

func productsDTO(raw []remote.RawProduct) ProductsResponseDTO {
	products := make([]ProductDTO, len(raw))
	for i, p := range raw {
		products[i] = rawProductDTO(p)
	}
	return ProductsResponseDTO{Count: len(products), Products: products}
}
