// Package api exposes catalog queries over HTTP.
package api

import (
	"context"
	"time"

	"catalog-query-api/internal/catalog"
	"catalog-query-api/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "catalog-query-api"
	serviceVersion = "1.0.0"
)

// CatalogManager exposes the loaded catalog's state and reloads it.
type CatalogManager interface {
	Info() catalog.Info
	Reload(ctx context.Context) (catalog.Info, error)
}

// CacheAdmin is the operational surface of the result cache.
type CacheAdmin interface {
	GetStats(ctx context.Context) map[string]interface{}
	FlushCache(ctx context.Context) (int, error)
	GetAllKeys(ctx context.Context) []string
	GetKeyTTL(ctx context.Context, key string) time.Duration
}

type Deps struct {
	Search    *services.SearchService
	Catalog   CatalogManager
	Cache     CacheAdmin
	Logger    *zap.Logger
	RateLimit float64
	RateBurst int
}

type handler struct {
	search   *services.SearchService
	catalog  CatalogManager
	cache    CacheAdmin
	limiters *ipLimiters
	logger   *zap.Logger
}

// NewRouter registers HTTP routes and returns the engine with middleware.
func NewRouter(d Deps) *gin.Engine {
	h := &handler{
		search:   d.Search,
		catalog:  d.Catalog,
		cache:    d.Cache,
		limiters: newIPLimiters(d.RateLimit, d.RateBurst),
		logger:   d.Logger,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(requestLogger(d.Logger))
	r.Use(h.limiters.middleware())

	r.GET("/health", h.health)
	r.GET("/api/info", h.info)
	r.GET("/rate-limit/status", h.rateLimitStatus)

	r.GET("/search", h.searchProducts)
	r.GET("/facets", h.facets)
	r.GET("/categories", h.categories)
	r.GET("/suggestions", h.suggestions)

	r.POST("/catalog/reload", h.reloadCatalog)
	r.GET("/cache/stats", h.cacheStats)
	r.GET("/cache/keys", h.cacheKeys)
	r.DELETE("/cache/flush", h.flushCache)

	return r
}
