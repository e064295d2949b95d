package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"catalog-query-api/internal/models"
	"catalog-query-api/internal/scrapers"
)

// Scraper fetches and parses a product listing page.
type Scraper interface {
	Scrape(ctx context.Context, listingURL string) ([]models.Product, error)
}

// Renderer returns the HTML of a page after client-side rendering.
type Renderer interface {
	Render(ctx context.Context, pageURL, waitSelector string) (string, error)
}

// ScraperProvider builds a catalog from a static listing page.
type ScraperProvider struct {
	scraper Scraper
	url     string
}

func NewScraperProvider(scraper Scraper, listingURL string) *ScraperProvider {
	return &ScraperProvider{scraper: scraper, url: listingURL}
}

func (p *ScraperProvider) Name() string { return "scrape:" + p.url }

func (p *ScraperProvider) Load(ctx context.Context) ([]models.Product, error) {
	return p.scraper.Scrape(ctx, p.url)
}

// RenderedProvider builds a catalog from a listing that only appears after
// the page's scripts run.
type RenderedProvider struct {
	renderer  Renderer
	url       string
	source    string
	selectors scrapers.Selectors
}

func NewRenderedProvider(renderer Renderer, listingURL, source string, selectors scrapers.Selectors) *RenderedProvider {
	return &RenderedProvider{
		renderer:  renderer,
		url:       listingURL,
		source:    source,
		selectors: selectors,
	}
}

func (p *RenderedProvider) Name() string { return "render:" + p.url }

func (p *RenderedProvider) Load(ctx context.Context) ([]models.Product, error) {
	html, err := p.renderer.Render(ctx, p.url, p.selectors.Item)
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(p.url)
	products, err := scrapers.ParseListing(strings.NewReader(html), p.source, p.selectors, base)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %s", scrapers.ErrNoProducts, p.url)
	}
	return products, nil
}
