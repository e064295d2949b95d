package models

import (
	"errors"
	"fmt"
	"strings"

	"catalog-query-api/pkg/utils"
)

var (
	ErrInvalidRange   = errors.New("invalid range")
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
	SortRating    SortKey = "rating"
	SortPopular   SortKey = "popular"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "الكل"

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
	MaxRating       = 5
)

var sortAliases = map[string]SortKey{
	"":           SortRelevance,
	"relevance":  SortRelevance,
	"newest":     SortNewest,
	"price_low":  SortPriceLow,
	"price_asc":  SortPriceLow,
	"price_high": SortPriceHigh,
	"price_desc": SortPriceHigh,
	"rating":     SortRating,
	"popular":    SortPopular,
}

// ParseSortKey maps user input onto a SortKey. An empty string is relevance.
func ParseSortKey(s string) (SortKey, error) {
	key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortRelevance, fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
	return key, nil
}

// ValidSortKeys lists the canonical sort keys in display order.
func ValidSortKeys() []SortKey {
	return []SortKey{SortRelevance, SortNewest, SortPopular, SortPriceLow, SortPriceHigh, SortRating}
}

// IsAllCategory reports whether c is one of the spellings of the
// all-categories sentinel.
func IsAllCategory(c string) bool {
	c = strings.TrimSpace(c)
	return c == "" || c == AllCategories || strings.EqualFold(c, "all")
}

type FilterConfig struct {
	Category  string  `json:"category"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	MinRating float64 `json:"min_rating"`
	SortBy    SortKey `json:"sort_by"`
}

// DefaultFilters mirrors the reset state of the filter sheet: every product passes.
func DefaultFilters() FilterConfig {
	return FilterConfig{
		Category:  AllCategories,
		MinPrice:  DefaultMinPrice,
		MaxPrice:  DefaultMaxPrice,
		MinRating: 0,
		SortBy:    SortRelevance,
	}
}

// Validate checks bounds and the sort key. The query engine does not call it;
// callers decide whether to reject before querying.
func (f FilterConfig) Validate() error {
	if f.MinPrice < 0 || f.MaxPrice < 0 {
		return fmt.Errorf("%w: price bounds cannot be negative", ErrInvalidRange)
	}
	if f.MinPrice > f.MaxPrice {
		return fmt.Errorf("%w: minimum price %.2f exceeds maximum price %.2f", ErrInvalidRange, f.MinPrice, f.MaxPrice)
	}
	if f.MinRating < 0 || f.MinRating > MaxRating {
		return fmt.Errorf("%w: minimum rating must be between 0 and %d", ErrInvalidRange, MaxRating)
	}
	if _, err := ParseSortKey(string(f.SortBy)); err != nil {
		return err
	}
	return nil
}

// RawFilters holds filter fields exactly as typed by a user.
type RawFilters struct {
	Category  string
	MinPrice  string
	MaxPrice  string
	MinRating string
	SortBy    string
}

// NormalizeFilters turns raw user input into a well-typed FilterConfig.
// Unparseable bounds fall back to defaults, the rating is clamped to [0,5]
// and an unknown sort key becomes relevance. Range ordering is left to Validate.
func NormalizeFilters(raw RawFilters) FilterConfig {
	f := DefaultFilters()
	if c := strings.TrimSpace(raw.Category); c != "" {
		f.Category = c
	}
	f.MinPrice = utils.ParseBound(raw.MinPrice, DefaultMinPrice)
	f.MaxPrice = utils.ParseBound(raw.MaxPrice, DefaultMaxPrice)

	rating := utils.ParseBound(raw.MinRating, 0)
	switch {
	case rating < 0:
		rating = 0
	case rating > MaxRating:
		rating = MaxRating
	}
	f.MinRating = rating

	f.SortBy, _ = ParseSortKey(raw.SortBy)
	return f
}
