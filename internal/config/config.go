// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	ShutdownTimeout time.Duration

	CatalogFile    string
	SeedLang       string
	ListingURL     string
	ListingSource  string
	ListingPreset  string
	RenderListing  bool
	ChromePath     string
	ReloadInterval time.Duration

	RedisURL string
	RedisDB  int
	CacheTTL time.Duration

	RateLimit   float64
	RateBurst   int
	HistorySize int
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	n, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func floatenv(key string, def float64) float64 {
	f, err := strconv.ParseFloat(getenv(key, ""), 64)
	if err != nil {
		return def
	}
	return f
}

func boolenv(key string, def bool) bool {
	b, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return def
	}
	return b
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load collects configuration from environment with defaults. Callers load
// any .env file before calling it.
func Load() Config {
	return Config{
		Port:            getenv("PORT", "8085"),
		GinMode:         getenv("GIN_MODE", "release"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),

		CatalogFile:    getenv("CATALOG_FILE", ""),
		SeedLang:       getenv("SEED_LANG", "ar"),
		ListingURL:     getenv("LISTING_URL", ""),
		ListingSource:  getenv("LISTING_SOURCE", "listing"),
		ListingPreset:  getenv("LISTING_PRESET", ""),
		RenderListing:  boolenv("RENDER_LISTING", false),
		ChromePath:     getenv("CHROME_PATH", ""),
		ReloadInterval: durenvs("CATALOG_RELOAD_INTERVAL", 0),

		RedisURL: getenv("REDIS_URL", "redis://localhost:6379"),
		RedisDB:  atoienv("REDIS_DB", 0),
		CacheTTL: durenvs("CACHE_TTL", 600),

		RateLimit:   floatenv("RATE_LIMIT", 10),
		RateBurst:   atoienv("RATE_BURST", 20),
		HistorySize: atoienv("HISTORY_SIZE", 10),
	}
}
