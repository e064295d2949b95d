package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-query-api/internal/models"
	"go.uber.org/zap"
)

type Info struct {
	Provider string    `json:"provider"`
	Version  uint64    `json:"version"`
	Products int       `json:"products"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Catalog holds the current snapshot of a provider's products. Reload
// replaces the snapshot wholesale; a failed reload keeps the previous one.
type Catalog struct {
	provider Provider
	logger   *zap.Logger

	mu       sync.RWMutex
	products []models.Product
	version  uint64
	loadedAt time.Time
}

func New(provider Provider, logger *zap.Logger) *Catalog {
	return &Catalog{
		provider: provider,
		logger:   logger,
		products: []models.Product{},
	}
}

func (c *Catalog) Reload(ctx context.Context) (Info, error) {
	products, err := c.provider.Load(ctx)
	if err != nil {
		c.logger.Error("catalog reload failed", zap.String("provider", c.provider.Name()), zap.Error(err))
		return c.Info(), fmt.Errorf("reload catalog: %w", err)
	}

	c.mu.Lock()
	c.products = products
	c.version++
	c.loadedAt = time.Now()
	c.mu.Unlock()

	info := c.Info()
	c.logger.Info("catalog loaded",
		zap.String("provider", info.Provider),
		zap.Int("products", info.Products),
		zap.Uint64("version", info.Version))
	return info, nil
}

// Snapshot returns the current products and version. Callers must not
// modify the returned slice.
func (c *Catalog) Snapshot() ([]models.Product, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products, c.version
}

func (c *Catalog) Info() Info {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Info{
		Provider: c.provider.Name(),
		Version:  c.version,
		Products: len(c.products),
		LoadedAt: c.loadedAt,
	}
}
