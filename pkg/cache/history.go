package cache

import (
	"context"
	"fmt"
	"strings"

	"catalog-query-api/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	recentKey   = "history:recent"
	trendingKey = "history:trending"
	displayKey  = "history:display"
)

// RedisHistory stores search history in Redis so it is shared by every
// server instance. Queries are keyed lowercase; the last spelling typed is
// kept for display. Trending ties are broken by Redis member order.
type RedisHistory struct {
	client *redis.Client
	size   int
}

func NewRedisHistory(client *redis.Client, size int) *RedisHistory {
	if client == nil {
		return nil
	}
	if size <= 0 {
		size = 10
	}
	return &RedisHistory{client: client, size: size}
}

func (h *RedisHistory) Record(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	key := strings.ToLower(query)

	_, err := h.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, recentKey, 0, key)
		pipe.LPush(ctx, recentKey, key)
		pipe.LTrim(ctx, recentKey, 0, int64(h.size-1))
		pipe.ZIncrBy(ctx, trendingKey, 1, key)
		pipe.HSet(ctx, displayKey, key, query)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record search history: %w", err)
	}
	return nil
}

func (h *RedisHistory) Recent(ctx context.Context, n int) ([]string, error) {
	keys, err := h.client.LRange(ctx, recentKey, 0, stop(n)).Result()
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return h.display(ctx, keys)
}

func (h *RedisHistory) Trending(ctx context.Context, n int) ([]models.TrendingQuery, error) {
	scored, err := h.client.ZRevRangeWithScores(ctx, trendingKey, 0, stop(n)).Result()
	if err != nil {
		return nil, fmt.Errorf("trending searches: %w", err)
	}

	keys := make([]string, len(scored))
	for i, z := range scored {
		keys[i] = fmt.Sprint(z.Member)
	}
	names, err := h.display(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make([]models.TrendingQuery, len(scored))
	for i, z := range scored {
		out[i] = models.TrendingQuery{Query: names[i], Count: int(z.Score)}
	}
	return out, nil
}

func (h *RedisHistory) display(ctx context.Context, keys []string) ([]string, error) {
	out := make([]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := h.client.HMGet(ctx, displayKey, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("history display names: %w", err)
	}
	for i, k := range keys {
		out[i] = k
		if s, ok := vals[i].(string); ok && s != "" {
			out[i] = s
		}
	}
	return out, nil
}

func stop(n int) int64 {
	if n <= 0 {
		return -1
	}
	return int64(n - 1)
}
