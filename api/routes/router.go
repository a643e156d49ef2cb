package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgfirestore "github.com/angelmondragon/storefront-backend/pkg/firestore"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	docStore pkgfirestore.Pinger,
	kv redis.Pinger,
	verifier middleware.TokenVerifier,
	catalogService catalog.Service,
	settingsService settings.Service,
	cartStore *cart.Store,
	formatter *checkout.Formatter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, docStore, kv))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Get("/settings", controllers.SettingsFetch(settingsService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartStore, logg))
			r.Post("/items", controllers.CartAddItem(cartStore, logg))
			r.Post("/items/{productId}/quantity", controllers.CartChangeQuantity(cartStore, logg))
		})

		r.Post("/checkout", controllers.Checkout(cartStore, settingsService, formatter, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(verifier, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(catalogService, logg))
		})
		r.Put("/settings", controllers.AdminUpsertSettings(settingsService, logg))
		r.Post("/catalog/reload", controllers.AdminReloadCatalog(catalogService, logg))
	})

	return r
}
