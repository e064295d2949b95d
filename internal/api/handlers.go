package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalog-query-api/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *handler) health(c *gin.Context) {
	health := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
		"catalog": h.catalog.Info(),
	}

	if h.cache != nil {
		health["cache"] = "redis connected"
	} else {
		health["cache"] = "redis unavailable"
	}

	c.JSON(http.StatusOK, health)
}

func (h *handler) info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Catalog Query API",
		"version":     serviceVersion,
		"description": "Search, filter and sort a product catalog",
		"features":    []string{"Text search", "Category, price and rating filters", "Sorting", "Pagination", "Facets", "Search suggestions", "Redis caching"},
		"endpoints": map[string]string{
			"GET /search":            "Search products with filtering and sorting",
			"GET /facets":            "Category counts, price range and average rating",
			"GET /categories":        "Selectable categories",
			"GET /suggestions":       "Recent and trending searches",
			"POST /catalog/reload":   "Reload the catalog from its provider",
			"GET /health":            "Health check",
			"GET /cache/stats":       "Cache statistics",
			"GET /cache/keys":        "Cached search pages and their TTL",
			"DELETE /cache/flush":    "Drop cached search pages",
			"GET /rate-limit/status": "Rate limit state for the caller",
		},
		"sort_options": models.ValidSortKeys(),
	})
}

func (h *handler) rateLimitStatus(c *gin.Context) {
	ip := c.ClientIP()
	limiter := h.limiters.get(ip)

	c.JSON(http.StatusOK, gin.H{
		"ip":               ip,
		"limit_per_second": float64(limiter.Limit()),
		"burst_capacity":   limiter.Burst(),
		"tokens_available": limiter.Tokens(),
	})
}

func (h *handler) searchProducts(c *gin.Context) {
	params := parseSearchParams(c)

	results, err := h.search.SearchProducts(c.Request.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		code := "search_failed"
		if errors.Is(err, models.ErrInvalidRange) || errors.Is(err, models.ErrInvalidSortKey) {
			status = http.StatusBadRequest
			code = "invalid_filters"
		}
		h.logger.Warn("search error", zap.Error(err))
		c.JSON(status, models.ErrorResponse{
			Error:   code,
			Code:    status,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *handler) facets(c *gin.Context) {
	c.JSON(http.StatusOK, h.search.Facets())
}

func (h *handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.search.Categories()})
}

func (h *handler) suggestions(c *gin.Context) {
	limit := intQuery(c, "limit", 5)

	suggestions, err := h.search.Suggestions(c.Request.Context(), c.Query("prefix"), limit)
	if err != nil {
		h.logger.Warn("suggestions error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "suggestions_failed",
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (h *handler) reloadCatalog(c *gin.Context) {
	info, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "reload_failed",
			Code:    http.StatusBadGateway,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *handler) cacheStats(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "cache not available",
		})
		return
	}
	c.JSON(http.StatusOK, h.cache.GetStats(c.Request.Context()))
}

type cachedKey struct {
	Key        string `json:"key"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// cacheKeys lists cached search pages with their remaining lifetime.
func (h *handler) cacheKeys(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "cache not available",
		})
		return
	}

	ctx := c.Request.Context()
	keys := h.cache.GetAllKeys(ctx)
	out := make([]cachedKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, cachedKey{Key: k, TTLSeconds: int(h.cache.GetKeyTTL(ctx, k).Seconds())})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "keys": out})
}

func (h *handler) flushCache(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "cache not available",
		})
		return
	}

	removed, err := h.cache.FlushCache(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to flush cache",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "cache flushed successfully",
		"removed":   removed,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// parseSearchParams reads the query string. Malformed numbers fall back to
// defaults here so the service only ever sees well-typed filters.
func parseSearchParams(c *gin.Context) models.SearchParams {
	filters := models.NormalizeFilters(models.RawFilters{
		Category:  c.Query("category"),
		MinPrice:  c.Query("min_price"),
		MaxPrice:  c.Query("max_price"),
		MinRating: c.Query("min_rating"),
		SortBy:    c.Query("sort"),
	})

	return models.SearchParams{
		Query:   c.Query("q"),
		Filters: filters,
		Page:    intQuery(c, "page", 1),
		Limit:   intQuery(c, "limit", 10),
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
