package scrapers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const listingHTML = `<!doctype html>
<html><body>
<ul>
  <li data-product data-id="p-100">
    <a href="/products/p-100"><img src="https://cdn.example/p-100.jpg"></a>
    <h3 class="name"> iPhone 15 Pro Max </h3>
    <span class="price">$1,299.00</span>
    <span class="rating">4.8 out of 5 stars</span>
    <span class="category">موبايلات</span>
  </li>
  <li data-product>
    <h3 class="name">AirPods Pro</h3>
    <span class="price">٢٤٩</span>
    <span class="rating">7</span>
  </li>
  <li data-product>
    <h3 class="name">Sold out</h3>
  </li>
</ul>
</body></html>`

func TestParseListing(t *testing.T) {
	base, _ := url.Parse("https://shop.example/c/phones")

	products, err := ParseListing(strings.NewReader(listingHTML), "Demo Shop", DefaultSelectors(), base)

	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "p-100", first.ID)
	assert.Equal(t, "iPhone 15 Pro Max", first.Name)
	assert.Equal(t, 1299.0, first.Price)
	assert.Equal(t, 4.8, first.Rating)
	assert.Equal(t, "موبايلات", first.Category)
	assert.Equal(t, "https://cdn.example/p-100.jpg", first.Image)
	assert.Equal(t, "https://shop.example/products/p-100", first.URL)
	assert.Equal(t, "Demo Shop", first.Source)

	second := products[1]
	assert.Equal(t, "demo_shop_2", second.ID)
	assert.Equal(t, 249.0, second.Price)
	assert.Equal(t, 5.0, second.Rating)
	assert.Empty(t, second.Category)
	assert.Empty(t, second.URL)
}

func TestParseListing_CustomSelectors(t *testing.T) {
	html := `<div class="card" sku="A1"><b>Hammer</b><i>12.50</i></div>`
	sel := Selectors{Item: ".card", Name: "b", Price: "i", IDAttr: "sku"}

	products, err := ParseListing(strings.NewReader(html), "tools", sel, nil)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "A1", products[0].ID)
	assert.Equal(t, 12.5, products[0].Price)
	assert.Zero(t, products[0].Rating)
}

func TestListingScraper_Scrape(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, listingHTML)
	}))
	defer srv.Close()

	s := NewListingScraper("shop", DefaultSelectors(), 0, zap.NewNop())
	products, err := s.Scrape(context.Background(), srv.URL+"/listing")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, srv.URL+"/products/p-100", products[0].URL)
	assert.Equal(t, "shop_2", products[1].ID)
	assert.Contains(t, gotUA, "Mozilla/5.0")

	again, err := s.Scrape(context.Background(), srv.URL+"/listing")
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestListingScraper_NoProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><p>Nothing here</p></body></html>")
	}))
	defer srv.Close()

	_, err := NewListingScraper("shop", DefaultSelectors(), 0, zap.NewNop()).Scrape(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNoProducts)
}

func TestListingScraper_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewListingScraper("shop", DefaultSelectors(), 0, zap.NewNop()).Scrape(context.Background(), srv.URL)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoProducts)
}

func TestListingScraper_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewListingScraper("shop", DefaultSelectors(), 0, zap.NewNop()).Scrape(ctx, "http://127.0.0.1:1")
	assert.ErrorIs(t, err, context.Canceled)
}
