package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalog-query-api/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const searchKeyPrefix = "search:"

var ErrUnavailable = errors.New("redis client not available")

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Connect parses url, selects db and pings the server.
func Connect(ctx context.Context, redisURL string, db int) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.DB = db

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if client == nil {
		return nil
	}
	logger.Info("redis cache enabled",
		zap.Int("db", client.Options().DB),
		zap.Duration("ttl", ttl))
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns nil, nil on a cache miss.
func (r *RedisCache) Get(ctx context.Context, key string) (*models.SearchResponse, error) {
	if !r.IsAvailable() {
		return nil, ErrUnavailable
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var response models.SearchResponse
	if err := json.Unmarshal(val, &response); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &response, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, response *models.SearchResponse) error {
	if !r.IsAvailable() {
		return ErrUnavailable
	}

	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// SearchKey builds the cache key for params against a catalog version, so a
// catalog reload never serves stale pages. Free text is length-prefixed and
// bounds are written at full precision, so distinct params never share a key.
func SearchKey(version uint64, params models.SearchParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sv%d:q%s:p%d:l%d", searchKeyPrefix, version, lenPrefixed(params.Query), params.Page, params.Limit)

	f := params.Filters
	if !models.IsAllCategory(f.Category) {
		fmt.Fprintf(&b, ":cat%s", lenPrefixed(f.Category))
	}
	fmt.Fprintf(&b, ":minp%s:maxp%s", exact(f.MinPrice), exact(f.MaxPrice))
	if f.MinRating > 0 {
		fmt.Fprintf(&b, ":rating%s", exact(f.MinRating))
	}
	if f.SortBy != "" {
		fmt.Fprintf(&b, ":sort%s", f.SortBy)
	}
	return b.String()
}

func lenPrefixed(s string) string {
	return strconv.Itoa(len(s)) + "#" + s
}

func exact(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (r *RedisCache) Close() error {
	if !r.IsAvailable() {
		return nil
	}
	return r.client.Close()
}

func (r *RedisCache) IsAvailable() bool {
	return r != nil && r.client != nil
}

func (r *RedisCache) GetStats(ctx context.Context) map[string]interface{} {
	if !r.IsAvailable() {
		return map[string]interface{}{
			"status": "unavailable",
		}
	}

	info := r.client.Info(ctx, "memory").Val()
	return map[string]interface{}{
		"status":      "connected",
		"ttl_seconds": int(r.ttl.Seconds()),
		"keys":        len(r.GetAllKeys(ctx)),
		"memory_info": info,
	}
}

func (r *RedisCache) GetAllKeys(ctx context.Context) []string {
	if !r.IsAvailable() {
		return []string{}
	}

	keys := []string{}
	iter := r.client.Scan(ctx, 0, searchKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Warn("scan cache keys", zap.Error(err))
	}
	return keys
}

// FlushCache removes cached search pages only; search history survives.
func (r *RedisCache) FlushCache(ctx context.Context) (int, error) {
	if !r.IsAvailable() {
		return 0, ErrUnavailable
	}

	keys := r.GetAllKeys(ctx)
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis del: %w", err)
	}
	return int(n), nil
}

// GetKeyTTL returns the remaining lifetime of key, or 0 when it has none.
func (r *RedisCache) GetKeyTTL(ctx context.Context, key string) time.Duration {
	if !r.IsAvailable() {
		return 0
	}
	// missing and non-expiring keys report negative sentinels
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}
