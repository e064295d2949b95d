package main

import (
	"encoding/json"
	"fmt"

	"catalog-query-api/internal/services"
	"github.com/spf13/cobra"
)

var facetsJSON bool

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Summarize catalog categories, prices and ratings",
	Args:  cobra.NoArgs,
	RunE:  runFacets,
}

func init() {
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "output summary as JSON")
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, _ []string) error {
	products, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	summary := services.Facets(products)
	if facetsJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal facets: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Products: %d\n", summary.Total)
	cmd.Printf("Price:    %.2f - %.2f\n", summary.MinPrice, summary.MaxPrice)
	cmd.Printf("Rating:   %.2f average\n", summary.AverageRating)
	cmd.Println("Categories:")
	for _, c := range summary.Categories {
		cmd.Printf("  %s (%d)\n", c.Category, c.Count)
	}
	return nil
}
