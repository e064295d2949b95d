package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"catalog-query-api/internal/models"
	"catalog-query-api/pkg/cache"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// CatalogSource hands out the current catalog snapshot and its version.
// The returned slice must be treated as read-only.
type CatalogSource interface {
	Snapshot() ([]models.Product, uint64)
}

// ResultCache stores rendered search pages. Get returns nil, nil on a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.SearchResponse, error)
	Set(ctx context.Context, key string, response *models.SearchResponse) error
}

type SearchService struct {
	engine  *CatalogQueryEngine
	catalog CatalogSource
	cache   ResultCache
	history History
	logger  *zap.Logger
}

func NewSearchService(catalog CatalogSource, logger *zap.Logger) *SearchService {
	return &SearchService{
		engine:  NewCatalogQueryEngine(),
		catalog: catalog,
		logger:  logger,
	}
}

// SetCache enables result caching. A nil cache disables it.
func (s *SearchService) SetCache(c ResultCache) {
	s.cache = c
}

// SetHistory enables search history recording.
func (s *SearchService) SetHistory(h History) {
	s.history = h
}

func (s *SearchService) SearchProducts(ctx context.Context, params models.SearchParams) (*models.SearchResponse, error) {
	startTime := time.Now()

	if err := s.validateSearchParams(&params); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, params.Query)

	products, version := s.catalog.Snapshot()

	cacheKey := ""
	if s.cache != nil {
		cacheKey = cache.SearchKey(version, params)
		cached, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			s.logger.Warn("cache lookup failed", zap.String("key", cacheKey), zap.Error(err))
		case cached != nil:
			cached.Query = params.Query
			cached.Cached = true
			cached.Duration = time.Since(startTime).String()
			s.logger.Debug("cache hit", zap.String("key", cacheKey))
			return cached, nil
		default:
			s.logger.Debug("cache miss", zap.String("key", cacheKey))
		}
	}

	result := s.engine.Query(products, params.Query, params.Filters)
	page, totalPages := applyPagination(result.Products, params.Page, params.Limit)

	response := &models.SearchResponse{
		Query:      result.Query,
		Products:   page,
		Total:      result.Count,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
		Filters:    params.Filters,
		Duration:   time.Since(startTime).String(),
	}

	s.logger.Info("catalog query",
		zap.String("query", params.Query),
		zap.String("category", params.Filters.Category),
		zap.String("sort", string(params.Filters.SortBy)),
		zap.Int("total", result.Count),
		zap.Uint64("catalog_version", version))

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, response); err != nil {
			s.logger.Warn("failed to cache results", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return response, nil
}

// Facets summarizes the current catalog.
func (s *SearchService) Facets() models.FacetSummary {
	products, _ := s.catalog.Snapshot()
	return Facets(products)
}

func (s *SearchService) Categories() []string {
	products, _ := s.catalog.Snapshot()
	return Categories(products)
}

// Suggestions returns recent searches and trending queries. With a prefix,
// trending is narrowed to queries that start with it.
func (s *SearchService) Suggestions(ctx context.Context, prefix string, n int) (*models.Suggestions, error) {
	out := &models.Suggestions{Recent: []string{}, Trending: []models.TrendingQuery{}}
	if s.history == nil {
		return out, nil
	}

	recent, err := s.history.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	out.Recent = recent

	trending, err := s.history.Trending(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("trending searches: %w", err)
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	for _, t := range trending {
		if n > 0 && len(out.Trending) >= n {
			break
		}
		if strings.HasPrefix(strings.ToLower(t.Query), prefix) {
			out.Trending = append(out.Trending, t)
		}
	}
	return out, nil
}

func (s *SearchService) recordHistory(ctx context.Context, query string) {
	if s.history == nil || strings.TrimSpace(query) == "" {
		return
	}
	if err := s.history.Record(ctx, query); err != nil {
		s.logger.Warn("failed to record search", zap.String("query", query), zap.Error(err))
	}
}

func (s *SearchService) validateSearchParams(params *models.SearchParams) error {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	if params.Filters.SortBy == "" {
		params.Filters.SortBy = models.SortRelevance
	}
	if strings.TrimSpace(params.Filters.Category) == "" {
		params.Filters.Category = models.AllCategories
	}
	return params.Filters.Validate()
}

func applyPagination(products []models.Product, page, limit int) ([]models.Product, int) {
	total := len(products)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, totalPages
	}

	end := start + limit
	if end > total {
		end = total
	}

	return products[start:end], totalPages
}
