package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lumina-accesorios/lumina-backend/api/routes"
	authsvc "github.com/lumina-accesorios/lumina-backend/internal/auth"
	cartsvc "github.com/lumina-accesorios/lumina-backend/internal/cart"
	catalogsvc "github.com/lumina-accesorios/lumina-backend/internal/catalog"
	categorysvc "github.com/lumina-accesorios/lumina-backend/internal/categories"
	mediasvc "github.com/lumina-accesorios/lumina-backend/internal/media"
	productsvc "github.com/lumina-accesorios/lumina-backend/internal/products"
	"github.com/lumina-accesorios/lumina-backend/internal/users"
	"github.com/lumina-accesorios/lumina-backend/pkg/auth/session"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/db"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/lumina-accesorios/lumina-backend/pkg/metrics"
	"github.com/lumina-accesorios/lumina-backend/pkg/migrate"
	"github.com/lumina-accesorios/lumina-backend/pkg/redis"
	"github.com/lumina-accesorios/lumina-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		Limiter:        redisClient,
		JWTConfig:      cfg.JWT,
		RateLimit:      cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalogsvc.NewService(catalogsvc.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, redisClient, cfg.Cart.SessionTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, cartsvc.NewRepository(dbClient.DB()), cfg.Cart, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	categoryService, err := categorysvc.NewService(categorysvc.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(
		productsvc.NewRepository(dbClient.DB()),
		dbClient,
		categorysvc.NewRepository(dbClient.DB()),
		gcsClient,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	mediaService, err := mediasvc.NewService(
		gcsClient,
		productsvc.NewRepository(dbClient.DB()),
		mediasvc.NewRepository(dbClient.DB()),
		cfg.Media,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			Metrics:      httpMetrics,
			DB:           dbClient,
			Redis:        redisClient,
			Storage:      gcsClient,
			Sessions:     sessionManager,
			Catalog:      catalogService,
			Cart:         cartService,
			Auth:         authService,
			Products:     productService,
			Categories:   categoryService,
			Media:        mediaService,
			PromGatherer: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
