package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-query-api/internal/api"
	"catalog-query-api/internal/catalog"
	"catalog-query-api/internal/config"
	"catalog-query-api/internal/logging"
	"catalog-query-api/internal/scrapers"
	"catalog-query-api/internal/services"
	"catalog-query-api/pkg/browser"
	"catalog-query-api/pkg/cache"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Debug("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		logger.Fatal("invalid catalog configuration", zap.Error(err))
	}
	cat := catalog.New(provider, logger)
	if _, err := cat.Reload(ctx); err != nil {
		logger.Fatal("initial catalog load failed", zap.Error(err))
	}

	searchService := services.NewSearchService(cat, logger)
	deps := api.Deps{
		Search:    searchService,
		Catalog:   cat,
		Logger:    logger,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}

	client, err := cache.Connect(ctx, cfg.RedisURL, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		searchService.SetHistory(services.NewMemoryHistory(cfg.HistorySize))
	} else {
		defer client.Close()
		redisCache := cache.NewRedisCache(client, cfg.CacheTTL, logger)
		searchService.SetCache(redisCache)
		searchService.SetHistory(cache.NewRedisHistory(client, cfg.HistorySize))
		deps.Cache = redisCache
	}

	if cfg.ReloadInterval > 0 {
		go reloadPeriodically(ctx, cat, cfg.ReloadInterval)
	}

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(deps),
	}

	go func() {
		logger.Info("starting catalog query server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server exited")
}

// buildProvider combines the configured catalog sources. With nothing
// configured the built-in seed catalog is served.
func buildProvider(cfg config.Config, logger *zap.Logger) (catalog.Provider, error) {
	var providers []catalog.Provider

	if cfg.CatalogFile != "" {
		providers = append(providers, catalog.NewFileProvider(cfg.CatalogFile))
	}

	if cfg.ListingURL != "" {
		selectors, err := scrapers.Preset(cfg.ListingPreset)
		if err != nil {
			return nil, err
		}
		if cfg.RenderListing {
			renderer := browser.NewRenderer(cfg.ChromePath, browser.DefaultTimeout, logger)
			providers = append(providers, catalog.NewRenderedProvider(renderer, cfg.ListingURL, cfg.ListingSource, selectors))
		} else {
			scraper := scrapers.NewListingScraper(cfg.ListingSource, selectors, 2*time.Second, logger)
			providers = append(providers, catalog.NewScraperProvider(scraper, cfg.ListingURL))
		}
	}

	switch len(providers) {
	case 0:
		return catalog.NewSeedProvider(cfg.SeedLang)
	case 1:
		return providers[0], nil
	default:
		return catalog.NewMultiProvider(logger, providers...), nil
	}
}

func reloadPeriodically(ctx context.Context, cat *catalog.Catalog, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// failures are logged by Reload and the previous snapshot stays live
			_, _ = cat.Reload(ctx)
		}
	}
}
