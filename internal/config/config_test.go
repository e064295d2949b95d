package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "GIN_MODE", "LOG_LEVEL", "SHUTDOWN_TIMEOUT", "CATALOG_FILE", "SEED_LANG", "LISTING_URL",
		"LISTING_SOURCE", "LISTING_PRESET", "RENDER_LISTING", "CHROME_PATH", "CATALOG_RELOAD_INTERVAL", "REDIS_URL", "REDIS_DB",
		"CACHE_TTL", "RATE_LIMIT", "RATE_BURST", "HISTORY_SIZE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, Config{
		Port:            "8085",
		GinMode:         "release",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
		SeedLang:        "ar",
		ListingSource:   "listing",
		RedisURL:        "redis://localhost:6379",
		CacheTTL:        10 * time.Minute,
		RateLimit:       10,
		RateBurst:       20,
		HistorySize:     10,
	}, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CATALOG_FILE", "catalog.yaml")
	t.Setenv("SEED_LANG", "en")
	t.Setenv("LISTING_PRESET", "ebay")
	t.Setenv("RENDER_LISTING", "true")
	t.Setenv("CATALOG_RELOAD_INTERVAL", "30")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("HISTORY_SIZE", " 25 ")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "catalog.yaml", cfg.CatalogFile)
	assert.Equal(t, "en", cfg.SeedLang)
	assert.Equal(t, "ebay", cfg.ListingPreset)
	assert.True(t, cfg.RenderListing)
	assert.Equal(t, 30*time.Second, cfg.ReloadInterval)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 25, cfg.HistorySize)
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	t.Setenv("RATE_BURST", "lots")
	t.Setenv("RENDER_LISTING", "sometimes")
	t.Setenv("RATE_LIMIT", "fast")

	cfg := Load()

	assert.Equal(t, 20, cfg.RateBurst)
	assert.False(t, cfg.RenderListing)
	assert.Equal(t, 10.0, cfg.RateLimit)
}
