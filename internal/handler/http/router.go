package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/health"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/middleware"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/auth"
)

// RouterDeps bundles everything the router wires together. Handlers that
// are nil get their routes skipped, which keeps tests small.
type RouterDeps struct {
	Storefront *StorefrontHandler
	Cart       *CartHandler
	Wishlist   *WishlistHandler
	Admin      *AdminHandler
	Health     *health.Handler
	Tokens     *auth.JWTManager
	Logger     *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	if deps.Health != nil {
		r.Get("/health/live", deps.Health.LivenessHandler())
		r.Get("/health/ready", deps.Health.ReadinessHandler())
	}
	r.Handle("/metrics", promhttp.Handler())

	validate := func(string) (*middleware.Claims, error) {
		return nil, errors.New("no token validator configured")
	}
	if deps.Tokens != nil {
		validate = deps.Tokens.MiddlewareValidator()
	}

	if deps.Storefront != nil {
		r.Get("/api/v1/products", deps.Storefront.ListProducts)
	}

	// Cart and wishlist work for guests; a bearer token selects the user
	// scope.
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth(validate))

		if deps.Cart != nil {
			r.Route("/api/v1/cart", func(r chi.Router) {
				r.Get("/", deps.Cart.GetCart)
				r.Delete("/", deps.Cart.ClearCart)
				r.Post("/items", deps.Cart.AddItem)
				r.Post("/items/{productID}/increment", deps.Cart.IncrementItem)
				r.Post("/items/{productID}/decrement", deps.Cart.DecrementItem)
				r.Put("/items/{productID}/gift-wrap", deps.Cart.SetGiftWrap)
				r.Delete("/items/{productID}", deps.Cart.RemoveItem)
				r.Post("/checkout", deps.Cart.Checkout)
			})
		}

		if deps.Wishlist != nil {
			r.Route("/api/v1/wishlist", func(r chi.Router) {
				r.Get("/", deps.Wishlist.GetWishlist)
				r.Post("/toggle", deps.Wishlist.ToggleItem)
				r.Delete("/{id}", deps.Wishlist.RemoveItem)
			})
		}
	})

	if deps.Admin != nil {
		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Use(middleware.Auth(validate))
			r.Use(middleware.RequireRole(auth.RoleAdmin))

			r.Get("/products", deps.Admin.ListProducts)
			r.Post("/products", deps.Admin.CreateProduct)
			r.Get("/products/{id}", deps.Admin.GetProduct)
			r.Put("/products/{id}", deps.Admin.UpdateProduct)
			r.Delete("/products/{id}", deps.Admin.DeleteProduct)

			r.Get("/categories", deps.Admin.ListCategories)
			r.Post("/categories", deps.Admin.CreateCategory)
			r.Put("/categories/{id}", deps.Admin.UpdateCategory)
			r.Delete("/categories/{id}", deps.Admin.DeleteCategory)

			r.Get("/tags", deps.Admin.ListTags)
			r.Post("/tags", deps.Admin.CreateTag)
			r.Delete("/tags/{id}", deps.Admin.DeleteTag)

			r.Post("/media", deps.Admin.UploadImage)
		})
	}

	return r
}

// optionalAuth applies bearer auth when the Authorization header is present
// and lets anonymous requests through as guests. A present-but-invalid
// token is still rejected.
func optionalAuth(validate middleware.TokenValidator) func(http.Handler) http.Handler {
	authed := middleware.Auth(validate)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			authed(next).ServeHTTP(w, r)
		})
	}
}
