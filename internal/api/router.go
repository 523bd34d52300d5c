package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/sevenmenu/gateway/internal/analytics"
	"github.com/sevenmenu/gateway/internal/api/handlers"
	"github.com/sevenmenu/gateway/internal/api/middleware"
	"github.com/sevenmenu/gateway/internal/auth"
	"github.com/sevenmenu/gateway/internal/cart"
	"github.com/sevenmenu/gateway/internal/upstream"
)

// NewRouter builds the HTTP router for the storefront gateway.
func NewRouter(client *upstream.Client, carts cart.Store, session *auth.Manager, tracker *analytics.Tracker, countryCode string, log *logrus.Entry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(log))

	storefront := handlers.NewStorefrontHandler(client, carts, tracker, countryCode, log)
	admin := handlers.NewAdminHandler(session, client, log)

	// Public storefront, one menu per restaurant slug
	r.Route("/m/{slug}", func(r chi.Router) {
		r.Use(middleware.VisitorSession)
		r.Get("/", storefront.Menu)
		r.Post("/add", storefront.AddToCart)
		r.Get("/cart", storefront.CartView)
		r.Post("/cart/update", storefront.UpdateItem)
		r.Post("/cart/remove", storefront.RemoveItem)
		r.Post("/cart/clear", storefront.ClearCart)
		r.Post("/checkout", storefront.Checkout)
	})

	// Admin console
	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", admin.LoginView)
		r.Post("/login", admin.Login)
		r.Post("/register", admin.Register)

		r.Group(func(r chi.Router) {
			r.Use(admin.Guard)
			r.Get("/", admin.Dashboard)
			r.Post("/logout", admin.Logout)

			r.Get("/categories", admin.Categories)
			r.Post("/categories", admin.CreateCategory)
			r.Post("/categories/{id}", admin.UpdateCategory)
			r.Post("/categories/{id}/delete", admin.DeleteCategory)

			r.Get("/products", admin.Products)
			r.Post("/products", admin.CreateProduct)
			r.Post("/products/{id}", admin.UpdateProduct)
			r.Post("/products/{id}/delete", admin.DeleteProduct)

			r.Get("/promotions", admin.Promotions)
			r.Post("/promotions", admin.CreatePromotion)
			r.Post("/promotions/{id}/toggle", admin.TogglePromotion)
			r.Post("/promotions/{id}/delete", admin.DeletePromotion)

			r.Get("/settings", admin.SettingsView)
			r.Post("/settings", admin.SaveSettings)
		})
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
