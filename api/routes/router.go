package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumina-accesorios/lumina-backend/api/controllers"
	"github.com/lumina-accesorios/lumina-backend/api/middleware"
	authsvc "github.com/lumina-accesorios/lumina-backend/internal/auth"
	cartsvc "github.com/lumina-accesorios/lumina-backend/internal/cart"
	catalogsvc "github.com/lumina-accesorios/lumina-backend/internal/catalog"
	categorysvc "github.com/lumina-accesorios/lumina-backend/internal/categories"
	mediasvc "github.com/lumina-accesorios/lumina-backend/internal/media"
	productsvc "github.com/lumina-accesorios/lumina-backend/internal/products"
	"github.com/lumina-accesorios/lumina-backend/pkg/auth/session"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/lumina-accesorios/lumina-backend/pkg/metrics"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DB      pinger
	Redis   pinger
	Storage pinger

	Sessions session.AccessSessionChecker

	Catalog    catalogsvc.Service
	Cart       cartsvc.Service
	Auth       authsvc.Service
	Products   productsvc.Service
	Categories categorysvc.Service
	Media      mediasvc.Service

	PromGatherer prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessChecks(deps)))
	})

	if deps.PromGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", controllers.Catalog(deps.Catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items", controllers.AdjustCartQuantity(deps.Cart, logg))
			r.Delete("/items", controllers.RemoveCartItem(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Get("/totals", controllers.CartTotals(deps.Cart, logg))
			r.Post("/checkout", controllers.Checkout(deps.Cart, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(deps.Products, logg))
			r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
			r.Get("/{productID}", controllers.AdminGetProduct(deps.Products, logg))
			r.Put("/{productID}", controllers.AdminUpdateProduct(deps.Products, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.Products, logg))
			r.Post("/{productID}/image", controllers.AdminUploadProductImage(deps.Media, cfg.Media, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminListCategories(deps.Categories, logg))
			r.Post("/", controllers.AdminCreateCategory(deps.Categories, logg))
			r.Put("/{categoryID}", controllers.AdminUpdateCategory(deps.Categories, logg))
			r.Delete("/{categoryID}", controllers.AdminDeleteCategory(deps.Categories, logg))
		})
	})

	return r
}

func readinessChecks(deps Deps) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if deps.DB != nil {
		checks["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	if deps.Storage != nil {
		checks["gcs"] = deps.Storage
	}
	return checks
}
