// Package catalog loads product catalogs and serves immutable snapshots of
// them to the query layer.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-query-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider materializes a catalog.
type Provider interface {
	Name() string
	Load(ctx context.Context) ([]models.Product, error)
}

// MultiProvider loads several providers concurrently and concatenates their
// products in declaration order. The first product seen for an id wins.
// Load fails only when every provider fails.
type MultiProvider struct {
	providers []Provider
	logger    *zap.Logger
}

func NewMultiProvider(logger *zap.Logger, providers ...Provider) *MultiProvider {
	return &MultiProvider{providers: providers, logger: logger}
}

func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

func (m *MultiProvider) Load(ctx context.Context) ([]models.Product, error) {
	if len(m.providers) == 0 {
		return []models.Product{}, nil
	}

	results := make([][]models.Product, len(m.providers))
	errs := make([]error, len(m.providers))

	var g errgroup.Group
	for i, p := range m.providers {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("provider %s panicked: %v", p.Name(), r)
				}
			}()

			products, err := p.Load(ctx)
			if err != nil {
				errs[i] = fmt.Errorf("provider %s: %w", p.Name(), err)
				return nil
			}
			results[i] = products
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			m.logger.Warn("catalog provider failed", zap.String("provider", m.providers[i].Name()), zap.Error(err))
		}
	}
	if failed == len(m.providers) {
		return nil, errors.Join(errs...)
	}

	seen := make(map[string]bool)
	merged := make([]models.Product, 0)
	for i, products := range results {
		kept := 0
		for _, p := range products {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
			kept++
		}
		m.logger.Debug("catalog provider loaded",
			zap.String("provider", m.providers[i].Name()),
			zap.Int("products", len(products)),
			zap.Int("kept", kept))
	}
	return merged, nil
}
