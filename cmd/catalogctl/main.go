package main

import (
	"context"
	"fmt"
	"os"

	"catalog-query-api/internal/catalog"
	"catalog-query-api/internal/logging"
	"catalog-query-api/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogPath string
	seedLang    string
	verbose     bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Query and import product catalogs",
	Long: `catalogctl runs catalog queries offline against a catalog file and
imports catalogs from product listing pages.

Without --catalog the built-in demo catalog is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewConsole(verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "catalog file (.json, .yaml, .toml)")
	rootCmd.PersistentFlags().StringVar(&seedLang, "seed-lang", "ar", "category language of the demo catalog (ar, en)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadCatalog(ctx context.Context) ([]models.Product, error) {
	var provider catalog.Provider
	if catalogPath != "" {
		provider = catalog.NewFileProvider(catalogPath)
	} else {
		seed, err := catalog.NewSeedProvider(seedLang)
		if err != nil {
			return nil, err
		}
		provider = seed
	}

	products, err := provider.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Debug("catalog loaded", zap.String("provider", provider.Name()), zap.Int("products", len(products)))
	return products, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
