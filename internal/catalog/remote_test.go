package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-query-api/internal/models"
	"catalog-query-api/internal/scrapers"
)

type fakeRenderer struct {
	html    string
	err     error
	gotURL  string
	gotWait string
}

func (f *fakeRenderer) Render(_ context.Context, pageURL, waitSelector string) (string, error) {
	f.gotURL, f.gotWait = pageURL, waitSelector
	return f.html, f.err
}

type fakeScraper struct {
	products []models.Product
	gotURL   string
}

func (f *fakeScraper) Scrape(_ context.Context, listingURL string) ([]models.Product, error) {
	f.gotURL = listingURL
	return f.products, nil
}

const renderedListing = `<html><body>
<div data-product data-id="sku-1"><span class="name">Cordless Drill</span><span class="price">$89.99</span>
<span class="rating">4.4</span><span class="category">Tools</span><a href="/p/sku-1">view</a></div>
<div data-product><span class="name">No Price</span></div>
</body></html>`

func TestRenderedProvider(t *testing.T) {
	r := &fakeRenderer{html: renderedListing}
	p := NewRenderedProvider(r, "https://shop.example/listing", "shop", scrapers.DefaultSelectors())

	products, err := p.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "render:https://shop.example/listing", p.Name())
	assert.Equal(t, "[data-product]", r.gotWait)
	require.Len(t, products, 1)
	assert.Equal(t, models.Product{
		ID:       "sku-1",
		Name:     "Cordless Drill",
		Category: "Tools",
		Price:    89.99,
		Rating:   4.4,
		URL:      "https://shop.example/p/sku-1",
		Source:   "shop",
	}, products[0])
}

func TestRenderedProvider_Errors(t *testing.T) {
	down := errors.New("chrome not found")
	_, err := NewRenderedProvider(&fakeRenderer{err: down}, "https://x", "x", scrapers.DefaultSelectors()).Load(context.Background())
	assert.ErrorIs(t, err, down)

	_, err = NewRenderedProvider(&fakeRenderer{html: "<html></html>"}, "https://x", "x", scrapers.DefaultSelectors()).Load(context.Background())
	assert.ErrorIs(t, err, scrapers.ErrNoProducts)
}

func TestScraperProvider(t *testing.T) {
	s := &fakeScraper{products: []models.Product{product("1", "one")}}
	p := NewScraperProvider(s, "https://shop.example/listing")

	products, err := p.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "scrape:https://shop.example/listing", p.Name())
	assert.Equal(t, "https://shop.example/listing", s.gotURL)
	assert.Len(t, products, 1)
}
