package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"catalog-query-api/internal/models"
)

const (
	CategoryMobiles  = "موبايلات"
	CategoryTools    = "أدوات"
	defaultImageBase = "https://images.pexels.com/photos/"
)

// Seed catalog languages.
const (
	SeedArabic  = "ar"
	SeedEnglish = "en"
)

var englishCategories = map[string]string{
	CategoryMobiles: "Mobiles",
	CategoryTools:   "Tools",
}

var seedProducts = []models.Product{
	{
		ID:            "1",
		Name:          "iPhone 15 Pro Max",
		Category:      CategoryMobiles,
		Price:         1299,
		OriginalPrice: 1499,
		Rating:        4.8,
		Image:         defaultImageBase + "788946/pexels-photo-788946.jpeg?auto=compress&cs=tinysrgb&w=400",
		Source:        "seed",
	},
	{
		ID:       "2",
		Name:     "Samsung Galaxy S24",
		Category: CategoryMobiles,
		Price:    999,
		Rating:   4.7,
		Image:    defaultImageBase + "1092644/pexels-photo-1092644.jpeg?auto=compress&cs=tinysrgb&w=400",
		Source:   "seed",
	},
	{
		ID:            "3",
		Name:          "MacBook Pro M3",
		Category:      CategoryTools,
		Price:         2399,
		OriginalPrice: 2599,
		Rating:        4.9,
		Image:         defaultImageBase + "18105/pexels-photo.jpg?auto=compress&cs=tinysrgb&w=400",
		Source:        "seed",
	},
	{
		ID:       "4",
		Name:     "AirPods Pro",
		Category: CategoryTools,
		Price:    249,
		Rating:   4.6,
		Image:    defaultImageBase + "3780681/pexels-photo-3780681.jpeg?auto=compress&cs=tinysrgb&w=400",
		Source:   "seed",
	},
}

// SeedProvider serves the built-in demo catalog. Lang selects the category
// labels: Arabic (the zero value) or English.
type SeedProvider struct {
	Lang string
}

// NewSeedProvider validates lang, accepting "", "ar" and "en".
func NewSeedProvider(lang string) (SeedProvider, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch lang {
	case "", SeedArabic:
		return SeedProvider{}, nil
	case SeedEnglish:
		return SeedProvider{Lang: SeedEnglish}, nil
	}
	return SeedProvider{}, fmt.Errorf("unknown seed language %q (want %s or %s)", lang, SeedArabic, SeedEnglish)
}

func (s SeedProvider) Name() string {
	if s.Lang == SeedEnglish {
		return "seed:en"
	}
	return "seed"
}

func (s SeedProvider) Load(context.Context) ([]models.Product, error) {
	products := slices.Clone(seedProducts)
	if s.Lang == SeedEnglish {
		for i := range products {
			products[i].Category = englishCategories[products[i].Category]
		}
	}
	return products, nil
}
