package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vadhh/menuweb/internal/auth"
)

type RouterConfig struct {
	Tokens         *auth.TokenManager
	Auth           *AuthHandler
	Catalog        *CatalogHandler
	Cart           *CartHandler
	Orders         *OrderHandler
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(Authenticator(cfg.Tokens))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", cfg.Auth.Register)
		r.Post("/login", cfg.Auth.Login)

		// Public storefront catalog
		r.Get("/products", cfg.Catalog.ListProducts)
		r.Get("/products/{id}", cfg.Catalog.GetProduct)
		r.Get("/categories", cfg.Catalog.ListCategories)

		// Session cart
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Patch("/items/{product_id}", cfg.Cart.PatchItem)
			r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
		})

		// Checkout is open to guests; the rest of /orders is staff only
		r.Post("/orders", cfg.Orders.CreateOrder)
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/orders", cfg.Orders.ListOrders)
			r.Patch("/orders", cfg.Orders.UpdateStatus)
			r.Delete("/orders", cfg.Orders.DeleteOrder)
		})

		// Admin back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAuth)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", cfg.Catalog.ListCategories)
				r.Post("/", cfg.Catalog.CreateCategory)
				r.Get("/{id}", cfg.Catalog.GetCategory)
				r.Put("/{id}", cfg.Catalog.UpdateCategory)
				r.Delete("/{id}", cfg.Catalog.DeleteCategory)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", cfg.Catalog.ListProducts)
				r.Post("/", cfg.Catalog.CreateProduct)
				r.Put("/", cfg.Catalog.UpdateProduct)
				r.Delete("/", cfg.Catalog.DeleteProduct)
			})
		})
	})

	return r
}
