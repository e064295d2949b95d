package services

import (
	"math"

	"catalog-query-api/internal/models"
)

// Facets summarizes a catalog for filter controls: category counts in
// first-seen order, the price span and the mean rating.
func Facets(catalog []models.Product) models.FacetSummary {
	summary := models.FacetSummary{
		Total:      len(catalog),
		Categories: []models.CategoryCount{},
	}
	if len(catalog) == 0 {
		return summary
	}

	index := make(map[string]int)
	ratingSum := 0.0
	summary.MinPrice = catalog[0].Price
	summary.MaxPrice = catalog[0].Price

	for _, p := range catalog {
		if i, ok := index[p.Category]; ok {
			summary.Categories[i].Count++
		} else {
			index[p.Category] = len(summary.Categories)
			summary.Categories = append(summary.Categories, models.CategoryCount{Category: p.Category, Count: 1})
		}
		summary.MinPrice = math.Min(summary.MinPrice, p.Price)
		summary.MaxPrice = math.Max(summary.MaxPrice, p.Price)
		ratingSum += p.Rating
	}

	summary.AverageRating = math.Round(ratingSum/float64(len(catalog))*100) / 100
	return summary
}

// Categories lists the selectable category chips, sentinel first.
func Categories(catalog []models.Product) []string {
	categories := []string{models.AllCategories}
	for _, c := range Facets(catalog).Categories {
		if c.Category == "" || models.IsAllCategory(c.Category) {
			continue
		}
		categories = append(categories, c.Category)
	}
	return categories
}
