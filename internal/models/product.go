package models

import (
	"time"
)

// Product is a read-only catalog entry. Query code never mutates it.
type Product struct {
	ID            string    `json:"id" yaml:"id" toml:"id"`
	Name          string    `json:"name" yaml:"name" toml:"name"`
	Category      string    `json:"category" yaml:"category" toml:"category"`
	Price         float64   `json:"price" yaml:"price" toml:"price"`
	OriginalPrice float64   `json:"original_price,omitempty" yaml:"original_price,omitempty" toml:"original_price,omitempty"`
	Rating        float64   `json:"rating" yaml:"rating" toml:"rating"`
	Image         string    `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	URL           string    `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
	Source        string    `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty" toml:"created_at"`
}

// QueryResult is the ordered outcome of a single catalog query.
type QueryResult struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Query    string    `json:"query"`
}

type SearchParams struct {
	Query   string       `json:"query"`
	Filters FilterConfig `json:"filters"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
}

type SearchResponse struct {
	Query      string       `json:"query"`
	Products   []Product    `json:"products"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"total_pages"`
	Filters    FilterConfig `json:"filters"`
	Cached     bool         `json:"cached"`
	Duration   string       `json:"duration"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// FacetSummary describes a catalog for building filter controls.
type FacetSummary struct {
	Total         int             `json:"total"`
	Categories    []CategoryCount `json:"categories"`
	MinPrice      float64         `json:"min_price"`
	MaxPrice      float64         `json:"max_price"`
	AverageRating float64         `json:"average_rating"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type TrendingQuery struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type Suggestions struct {
	Recent   []string        `json:"recent"`
	Trending []TrendingQuery `json:"trending"`
}
