package services

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"catalog-query-api/internal/models"
)

// CatalogQueryEngine filters and orders a catalog snapshot. It holds no
// state, so one engine can serve any number of concurrent callers.
type CatalogQueryEngine struct{}

func NewCatalogQueryEngine() *CatalogQueryEngine {
	return &CatalogQueryEngine{}
}

// Query returns the products of catalog that match text and every active
// filter, ordered by filters.SortBy. The catalog slice is never modified.
func (e *CatalogQueryEngine) Query(catalog []models.Product, text string, filters models.FilterConfig) models.QueryResult {
	needle := strings.ToLower(strings.TrimSpace(text))

	matched := make([]models.Product, 0, len(catalog))
	for _, product := range catalog {
		if !matchesText(product, needle) {
			continue
		}
		if !matchesFilters(product, filters) {
			continue
		}
		matched = append(matched, product)
	}

	sortProducts(matched, filters.SortBy)

	return models.QueryResult{
		Products: matched,
		Count:    len(matched),
		Query:    text,
	}
}

func matchesText(p models.Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}

func matchesFilters(p models.Product, f models.FilterConfig) bool {
	if !models.IsAllCategory(f.Category) && p.Category != f.Category {
		return false
	}
	if p.Price < f.MinPrice || p.Price > f.MaxPrice {
		return false
	}
	return p.Rating >= f.MinRating
}

func sortProducts(products []models.Product, key models.SortKey) {
	switch key {
	case models.SortPriceLow:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case models.SortPriceHigh:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case models.SortRating:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case models.SortNewest:
		sortNewest(products)
	default:
		// relevance, popular and unknown keys keep catalog order
	}
}

// sortNewest prefers explicit creation times. Numeric ids are only used as a
// recency proxy when every product has one; otherwise order is untouched.
func sortNewest(products []models.Product) {
	if allCreated(products) {
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		return
	}

	type idKeyed struct {
		id      int64
		product models.Product
	}
	keyed := make([]idKeyed, len(products))
	for i, p := range products {
		id, err := strconv.ParseInt(strings.TrimSpace(p.ID), 10, 64)
		if err != nil {
			return
		}
		keyed[i] = idKeyed{id: id, product: p}
	}

	slices.SortStableFunc(keyed, func(a, b idKeyed) int {
		return cmp.Compare(b.id, a.id)
	})
	for i := range keyed {
		products[i] = keyed[i].product
	}
}

func allCreated(products []models.Product) bool {
	for _, p := range products {
		if p.CreatedAt.IsZero() {
			return false
		}
	}
	return true
}
