package scrapers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"catalog-query-api/internal/models"
	"catalog-query-api/pkg/utils"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var ErrNoProducts = errors.New("no products found on listing")

// Selectors locate product fields inside a listing page. Item selects one
// element per product; the remaining selectors are relative to it.
type Selectors struct {
	Item     string `json:"item" yaml:"item"`
	Name     string `json:"name" yaml:"name"`
	Price    string `json:"price" yaml:"price"`
	Rating   string `json:"rating" yaml:"rating"`
	Category string `json:"category" yaml:"category"`
	IDAttr   string `json:"id_attr" yaml:"id_attr"`
	Image    string `json:"image" yaml:"image"`
	Link     string `json:"link" yaml:"link"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		Item:     "[data-product]",
		Name:     ".name",
		Price:    ".price",
		Rating:   ".rating",
		Category: ".category",
		IDAttr:   "data-id",
		Image:    "img",
		Link:     "a",
	}
}

type ListingScraper struct {
	source    string
	selectors Selectors
	delay     time.Duration
	logger    *zap.Logger
}

func NewListingScraper(source string, selectors Selectors, delay time.Duration, logger *zap.Logger) *ListingScraper {
	return &ListingScraper{
		source:    source,
		selectors: selectors,
		delay:     delay,
		logger:    logger,
	}
}

// newCollector builds a fresh collector per scrape so callbacks never pile
// up across calls.
func (s *ListingScraper) newCollector() *colly.Collector {
	c := colly.NewCollector()

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
	})

	if s.delay > 0 {
		_ = c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Parallelism: 1,
			Delay:       s.delay,
		})
	}
	return c
}

// Scrape fetches listingURL and extracts one product per item element.
func (s *ListingScraper) Scrape(ctx context.Context, listingURL string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0)
	var visitErr error
	index := 0

	c := s.newCollector()

	c.OnResponse(func(r *colly.Response) {
		s.logger.Debug("listing response",
			zap.String("source", s.source),
			zap.String("url", r.Request.URL.String()),
			zap.Int("status", r.StatusCode))
	})

	c.OnHTML(s.selectors.Item, func(e *colly.HTMLElement) {
		index++
		product, ok := extractProduct(e.DOM, s.selectors, s.source, index, e.Request.URL)
		if !ok {
			return
		}
		products = append(products, product)
	})

	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("visit %s (status %d): %w", r.Request.URL, r.StatusCode, err)
	})

	s.logger.Info("scraping listing", zap.String("source", s.source), zap.String("url", listingURL))
	if err := c.Visit(listingURL); err != nil && visitErr == nil {
		visitErr = fmt.Errorf("visit %s: %w", listingURL, err)
	}
	c.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProducts, listingURL)
	}

	s.logger.Info("listing scraped", zap.String("source", s.source), zap.Int("products", len(products)))
	return products, nil
}

// ParseListing extracts products from an already fetched listing document.
// base resolves relative links and may be nil.
func ParseListing(r io.Reader, source string, selectors Selectors, base *url.URL) ([]models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	products := make([]models.Product, 0)
	doc.Find(selectors.Item).Each(func(i int, sel *goquery.Selection) {
		if product, ok := extractProduct(sel, selectors, source, i+1, base); ok {
			products = append(products, product)
		}
	})
	return products, nil
}

func extractProduct(sel *goquery.Selection, s Selectors, source string, index int, base *url.URL) (models.Product, bool) {
	name := childText(sel, s.Name)
	priceText := childText(sel, s.Price)
	if name == "" || priceText == "" {
		return models.Product{}, false
	}

	product := models.Product{
		Name:     name,
		Category: childText(sel, s.Category),
		Price:    utils.ParsePrice(priceText),
		Rating:   min(utils.ParseRating(childText(sel, s.Rating)), models.MaxRating),
		Image:    childAttr(sel, s.Image, "src"),
		URL:      resolve(base, childAttr(sel, s.Link, "href")),
		Source:   source,
	}

	if s.IDAttr != "" {
		product.ID = strings.TrimSpace(sel.AttrOr(s.IDAttr, ""))
	}
	if product.ID == "" {
		product.ID = fmt.Sprintf("%s_%d", strings.ToLower(strings.ReplaceAll(source, " ", "_")), index)
	}

	return product, true
}

func childText(sel *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

func childAttr(sel *goquery.Selection, selector, attr string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(sel.Find(selector).First().AttrOr(attr, ""))
}

func resolve(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}
