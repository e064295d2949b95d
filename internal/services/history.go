package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"catalog-query-api/internal/models"
)

const DefaultHistorySize = 10

// History records executed searches for the recent and trending panels.
type History interface {
	Record(ctx context.Context, query string) error
	Recent(ctx context.Context, n int) ([]string, error)
	Trending(ctx context.Context, n int) ([]models.TrendingQuery, error)
}

type trendEntry struct {
	query string
	count int
	seen  int
}

// MemoryHistory keeps search history in process memory.
type MemoryHistory struct {
	mu     sync.Mutex
	size   int
	recent []string
	trends map[string]*trendEntry
	seq    int
}

func NewMemoryHistory(size int) *MemoryHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &MemoryHistory{
		size:   size,
		recent: make([]string, 0, size),
		trends: make(map[string]*trendEntry),
	}
}

// Record moves query to the front of the recent list, dropping any earlier
// case-insensitive duplicate, and bumps its trending count. Blank queries
// are ignored.
func (h *MemoryHistory) Record(_ context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	key := strings.ToLower(query)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = slices.DeleteFunc(h.recent, func(q string) bool {
		return strings.ToLower(q) == key
	})
	h.recent = slices.Insert(h.recent, 0, query)
	if len(h.recent) > h.size {
		h.recent = h.recent[:h.size]
	}

	if t, ok := h.trends[key]; ok {
		t.count++
		return nil
	}
	h.seq++
	h.trends[key] = &trendEntry{query: query, count: 1, seen: h.seq}
	return nil
}

func (h *MemoryHistory) Recent(_ context.Context, n int) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.recent) {
		n = len(h.recent)
	}
	return slices.Clone(h.recent[:n]), nil
}

// Trending ranks queries by hit count; ties go to the query seen first.
func (h *MemoryHistory) Trending(_ context.Context, n int) ([]models.TrendingQuery, error) {
	h.mu.Lock()
	entries := make([]trendEntry, 0, len(h.trends))
	for _, t := range h.trends {
		entries = append(entries, *t)
	}
	h.mu.Unlock()

	slices.SortFunc(entries, func(a, b trendEntry) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return a.seen - b.seen
	})

	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]models.TrendingQuery, 0, n)
	for _, t := range entries[:n] {
		out = append(out, models.TrendingQuery{Query: t.query, Count: t.count})
	}
	return out, nil
}
