package main

import (
	"errors"
	"strings"
	"time"

	"catalog-query-api/internal/catalog"
	"catalog-query-api/internal/scrapers"
	"catalog-query-api/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	importOut        string
	importSource     string
	importRender     bool
	importChromePath string
	importDelay      time.Duration
	importPreset     string
	importSelectors  = scrapers.DefaultSelectors()
)

var importCmd = &cobra.Command{
	Use:   "import [listing-url]",
	Short: "Build a catalog file from a product listing page",
	Long: `Fetches a product listing page, extracts one product per item element
and writes the catalog to --out. Use --render for listings that only appear
after the page's scripts run (requires Chrome).

--preset picks selectors for a known retailer layout; individual selector
flags override it.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVarP(&importOut, "out", "o", "", "catalog file to write (.json, .yaml, .toml)")
	f.StringVar(&importSource, "source", "listing", "source label stored on each product")
	f.BoolVar(&importRender, "render", false, "render the page in headless Chrome first")
	f.StringVar(&importChromePath, "chrome-path", "", "Chrome executable (default: auto-detect)")
	f.DurationVar(&importDelay, "delay", 0, "delay between requests")
	f.StringVar(&importPreset, "preset", "", "selector preset: "+strings.Join(scrapers.PresetNames(), ", "))
	f.StringVar(&importSelectors.Item, "item", importSelectors.Item, "selector for one product element")
	f.StringVar(&importSelectors.Name, "name", importSelectors.Name, "name selector")
	f.StringVar(&importSelectors.Price, "price", importSelectors.Price, "price selector")
	f.StringVar(&importSelectors.Rating, "rating", importSelectors.Rating, "rating selector")
	f.StringVar(&importSelectors.Category, "category", importSelectors.Category, "category selector")
	f.StringVar(&importSelectors.IDAttr, "id-attr", importSelectors.IDAttr, "item attribute holding the product id")
	_ = importCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	selectors, err := resolveSelectors(cmd)
	if err != nil {
		return err
	}

	var provider catalog.Provider
	if importRender {
		renderer := browser.NewRenderer(importChromePath, browser.DefaultTimeout, logger)
		provider = catalog.NewRenderedProvider(renderer, args[0], importSource, selectors)
	} else {
		scraper := scrapers.NewListingScraper(importSource, selectors, importDelay, logger)
		provider = catalog.NewScraperProvider(scraper, args[0])
	}

	products, err := provider.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return errors.New("listing contained no products")
	}
	if err := catalog.Validate(products); err != nil {
		return err
	}
	if err := catalog.SaveFile(importOut, products); err != nil {
		return err
	}

	cmd.Printf("Imported %d products to %s\n", len(products), importOut)
	return nil
}

// resolveSelectors starts from --preset and applies any selector flag the
// user set explicitly.
func resolveSelectors(cmd *cobra.Command) (scrapers.Selectors, error) {
	s, err := scrapers.Preset(importPreset)
	if err != nil {
		return scrapers.Selectors{}, err
	}

	for _, o := range []struct {
		flag string
		dst  *string
		val  string
	}{
		{"item", &s.Item, importSelectors.Item},
		{"name", &s.Name, importSelectors.Name},
		{"price", &s.Price, importSelectors.Price},
		{"rating", &s.Rating, importSelectors.Rating},
		{"category", &s.Category, importSelectors.Category},
		{"id-attr", &s.IDAttr, importSelectors.IDAttr},
	} {
		if cmd.Flags().Changed(o.flag) {
			*o.dst = o.val
		}
	}
	return s, nil
}
