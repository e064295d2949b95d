package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"", SortRelevance, false},
		{"relevance", SortRelevance, false},
		{"newest", SortNewest, false},
		{"  Price_Low ", SortPriceLow, false},
		{"price_asc", SortPriceLow, false},
		{"price_desc", SortPriceHigh, false},
		{"rating", SortRating, false},
		{"popular", SortPopular, false},
		{"cheapest", SortRelevance, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSortKey))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsAllCategory(t *testing.T) {
	for _, c := range []string{"", "  ", AllCategories, "All", "all"} {
		assert.True(t, IsAllCategory(c), "%q", c)
	}
	for _, c := range []string{"Mobiles", "allx", "موبايلات"} {
		assert.False(t, IsAllCategory(c), "%q", c)
	}
}

func TestFilterConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultFilters().Validate())

	tests := []struct {
		name   string
		mutate func(*FilterConfig)
		want   error
	}{
		{"inverted range", func(f *FilterConfig) { f.MinPrice, f.MaxPrice = 900, 100 }, ErrInvalidRange},
		{"negative min", func(f *FilterConfig) { f.MinPrice = -1 }, ErrInvalidRange},
		{"rating above five", func(f *FilterConfig) { f.MinRating = 5.5 }, ErrInvalidRange},
		{"negative rating", func(f *FilterConfig) { f.MinRating = -0.5 }, ErrInvalidRange},
		{"unknown sort", func(f *FilterConfig) { f.SortBy = "fastest" }, ErrInvalidSortKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilters()
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestFilterConfig_ValidateEqualBounds(t *testing.T) {
	f := DefaultFilters()
	f.MinPrice, f.MaxPrice = 249, 249
	assert.NoError(t, f.Validate())
}

func TestNormalizeFilters(t *testing.T) {
	t.Run("empty input gives defaults", func(t *testing.T) {
		assert.Equal(t, DefaultFilters(), NormalizeFilters(RawFilters{}))
	})

	t.Run("parses typed values", func(t *testing.T) {
		got := NormalizeFilters(RawFilters{
			Category:  " Tools ",
			MinPrice:  "$1,000",
			MaxPrice:  "٢٥٠٠",
			MinRating: "4.5",
			SortBy:    "price_high",
		})
		assert.Equal(t, FilterConfig{
			Category:  "Tools",
			MinPrice:  1000,
			MaxPrice:  2500,
			MinRating: 4.5,
			SortBy:    SortPriceHigh,
		}, got)
	})

	t.Run("garbage bounds fall back", func(t *testing.T) {
		got := NormalizeFilters(RawFilters{MinPrice: "abc", MaxPrice: "--"})
		assert.Equal(t, float64(DefaultMinPrice), got.MinPrice)
		assert.Equal(t, float64(DefaultMaxPrice), got.MaxPrice)
	})

	t.Run("rating is clamped", func(t *testing.T) {
		assert.Equal(t, float64(MaxRating), NormalizeFilters(RawFilters{MinRating: "9"}).MinRating)
		assert.Equal(t, 0.0, NormalizeFilters(RawFilters{MinRating: "-2"}).MinRating)
	})

	t.Run("unknown sort becomes relevance", func(t *testing.T) {
		assert.Equal(t, SortRelevance, NormalizeFilters(RawFilters{SortBy: "cheapest"}).SortBy)
	})

	t.Run("inverted range survives for Validate", func(t *testing.T) {
		got := NormalizeFilters(RawFilters{MinPrice: "500", MaxPrice: "100"})
		assert.Equal(t, 500.0, got.MinPrice)
		assert.Equal(t, 100.0, got.MaxPrice)
		assert.True(t, errors.Is(got.Validate(), ErrInvalidRange))
	})
}
