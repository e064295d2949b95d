package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"catalog-query-api/internal/models"
	"catalog-query-api/internal/services"
	"github.com/spf13/cobra"
)

var (
	queryCategory  string
	queryMinPrice  string
	queryMaxPrice  string
	queryMinRating string
	querySort      string
	queryJSON      bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search, filter and sort the catalog",
	Long: `Matches text against product names and categories (case-insensitive),
then applies the category, price and rating filters and the requested sort.

Sort keys: relevance, newest, popular, price_low, price_high, rating.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryCategory, "category", "", "exact category to keep (default all)")
	queryCmd.Flags().StringVar(&queryMinPrice, "min-price", "", "minimum price, inclusive")
	queryCmd.Flags().StringVar(&queryMaxPrice, "max-price", "", "maximum price, inclusive")
	queryCmd.Flags().StringVar(&queryMinRating, "min-rating", "", "minimum rating between 0 and 5")
	queryCmd.Flags().StringVarP(&querySort, "sort", "s", "relevance", "sort key")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := ""
	if len(args) == 1 {
		text = args[0]
	}

	if _, err := models.ParseSortKey(querySort); err != nil {
		cmd.PrintErrf("warning: %v, keeping catalog order\n", err)
	}
	filters := models.NormalizeFilters(models.RawFilters{
		Category:  queryCategory,
		MinPrice:  queryMinPrice,
		MaxPrice:  queryMaxPrice,
		MinRating: queryMinRating,
		SortBy:    querySort,
	})
	if err := filters.Validate(); err != nil {
		return err
	}

	products, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	result := services.NewCatalogQueryEngine().Query(products, text, filters)

	if queryJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result models.QueryResult) {
	if result.Count == 0 {
		cmd.Println("No results found. Try different keywords.")
		return
	}

	if strings.TrimSpace(result.Query) != "" {
		cmd.Printf("%d results for '%s'\n\n", result.Count, result.Query)
	} else {
		cmd.Printf("%d products\n\n", result.Count)
	}
	for i, p := range result.Products {
		cmd.Printf("  [%d] %s  $%.2f  ★%.1f  %s\n", i+1, p.Name, p.Price, p.Rating, p.Category)
	}
}
