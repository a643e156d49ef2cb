package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgfirestore "github.com/angelmondragon/storefront-backend/pkg/firestore"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
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

	docStore, err := pkgfirestore.New(context.Background(), cfg.GCP, cfg.Firestore)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap firestore", err)
		os.Exit(1)
	}
	defer func() {
		if err := docStore.Close(); err != nil {
			logg.Error(context.Background(), "error closing firestore", err)
		}
	}()

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	verifier, err := auth.NewFirebaseVerifier(context.Background(), cfg.GCP)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap firebase auth", err)
		os.Exit(1)
	}

	productRepo, err := catalog.NewRepository(docStore, cfg.Firestore.ProductsCollection)
	if err != nil {
		logg.Error(context.Background(), "failed to create product repository", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	settingsRepo, err := settings.NewRepository(docStore, cfg.Firestore.SettingsCollection, cfg.Firestore.SettingsDocID)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings repository", err)
		os.Exit(1)
	}
	settingsService, err := settings.NewService(settingsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	group, groupCtx := errgroup.WithContext(context.Background())
	group.Go(func() error {
		_, err := catalogService.Load(groupCtx)
		return err
	})
	group.Go(func() error {
		_, err := settingsService.Load(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		logg.Error(context.Background(), "failed to load storefront state", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, redisClient.CartKey(cfg.Cart.PersistKey), catalogService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	if err := cartStore.Restore(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to restore cart", err)
		os.Exit(1)
	}

	formatter, err := checkout.NewFormatter(cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout formatter", err)
		os.Exit(1)
	}

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			docStore,
			redisClient,
			verifier,
			catalogService,
			settingsService,
			cartStore,
			formatter,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
