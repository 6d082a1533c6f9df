package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/auth"
)

// NewRouter assembles the buyer API surface.
func NewRouter(browse *BrowseHandler, carts *CartHandler, dir auth.Directory, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(auth.Middleware(dir))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", browse.ListListings)
		r.Get("/listings/recommended", browse.Recommended)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Delete("/", carts.ClearCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{listing_id}", carts.UpdateQuantity)
			r.Delete("/items/{listing_id}", carts.RemoveItem)
			r.Post("/open", carts.OpenCart)
		})

		r.Post("/orders", carts.PlaceOrder)
	})

	return r
}
