package router

import (
	"net/http"

	"tram-kitchen/internal/handler"
	"tram-kitchen/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Storefront routes are public; /api/admin is guarded by API-key auth.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Session)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Get("/products/{slug}", productHandler.GetBySlug)
		r.Get("/categories", productHandler.Categories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{productID}", cartHandler.SetQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.Get)
			r.Post("/items", wishlistHandler.AddItem)
			r.Delete("/items/{productID}", wishlistHandler.RemoveItem)
		})

		r.Post("/checkout", orderHandler.Checkout)
		r.Get("/orders/{code}", orderHandler.Lookup)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(apiKey, logger))

			r.Get("/products", adminHandler.ListProducts)
			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{id}", adminHandler.UpdateProduct)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)

			r.Post("/uploads", adminHandler.UploadImage)

			r.Get("/orders", adminHandler.ListOrders)
			r.Patch("/orders/{id}", adminHandler.PatchOrder)

			r.Get("/stats", adminHandler.Stats)
		})
	})

	return r
}
