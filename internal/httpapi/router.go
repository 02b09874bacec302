package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the storefront API. The UI talks only to these routes; all
// cart state flows through the synchronizer behind them.
func NewRouter(carts CartService, co CheckoutService, catalog Catalog, requestTimeout time.Duration) *chi.Mux {
	cartHandler := NewCartHandler(carts)
	checkoutHandler := NewCheckoutHandler(carts, co)
	productHandler := NewProductHandler(catalog)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/category/{category}", productHandler.ListByCategory)
			r.Get("/{id}", productHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}/quantity", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/freeze", checkoutHandler.Freeze)
			r.Post("/", checkoutHandler.Submit)
		})

		r.Get("/orders", checkoutHandler.ListOrders)
		r.Get("/orders/{id}", checkoutHandler.GetOrder)
	})

	return r
}
