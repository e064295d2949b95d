package scrapers

import (
	"fmt"
	"slices"
	"strings"
)

// presets holds selectors for retailer search result pages. Each field is a
// selector group; the first matching element inside an item is used.
var presets = map[string]Selectors{
	"amazon": {
		Item:   "div[data-component-type='s-search-result'], div.s-result-item[data-asin]",
		Name:   "h2 a span, h2 span",
		Price:  ".a-price .a-offscreen, .a-price-whole",
		Rating: ".a-icon-alt",
		IDAttr: "data-asin",
		Image:  "img.s-image",
		Link:   "h2 a",
	},
	"bestbuy": {
		Item:   "li.sku-item, [data-testid='product-card']",
		Name:   ".sku-title, h4.sr-product-title a, [data-testid='product-title']",
		Price:  ".priceView-customer-price span, .sku-price, .current-price",
		Rating: ".c-ratings-reviews .visually-hidden, .sr-rating",
		IDAttr: "data-sku-id",
		Image:  "img.product-image",
		Link:   ".sku-header a, h4.sr-product-title a",
	},
	"ebay": {
		Item:   "li.s-item, .s-item",
		Name:   ".s-item__title",
		Price:  ".s-item__price",
		Rating: ".x-star-rating .clipped, .ebay-review-stars",
		IDAttr: "data-listingid",
		Image:  ".s-item__image img",
		Link:   "a.s-item__link",
	},
	"flipkart": {
		Item:   "div[data-id]",
		Name:   "._4rR01T, .s1Q9rs, ._2WkVRV",
		Price:  "._30jeq3, ._1_WHN1",
		Rating: "._3LWZlK",
		IDAttr: "data-id",
		Image:  "img._396cs4",
		Link:   "a",
	},
	"target": {
		Item:   "[data-test='@web/site-top-of-funnel/ProductCard'], [data-test='product-card']",
		Name:   "a[data-test='product-title']",
		Price:  "[data-test='current-price'], [data-test='product-price']",
		Rating: "[data-test='ratings'] .h-sr-only, [data-test='rating']",
		Image:  "img[data-test='productImage'], picture img",
		Link:   "a[data-test='product-title']",
	},
	"walmart": {
		Item:   "[data-testid='item-stack'] > div, [data-testid='list-view'] > div",
		Name:   "[data-automation-id='product-title']",
		Price:  "[data-automation-id='product-price'] .w_iUH7, [itemprop='price']",
		Rating: "[data-testid='product-ratings'], .w_iUH7 + span",
		IDAttr: "data-item-id",
		Image:  "img[data-testid='productTileImage']",
		Link:   "a[link-identifier]",
	},
}

// Preset returns the selectors for a named retailer layout. The empty name
// and "default" return DefaultSelectors.
func Preset(name string) (Selectors, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return DefaultSelectors(), nil
	}
	s, ok := presets[name]
	if !ok {
		return Selectors{}, fmt.Errorf("unknown selector preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return s, nil
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets)+1)
	names = append(names, "default")
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
