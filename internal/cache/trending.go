package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rajeshbyreddy95/server/internal/models"
)

// trendingKey is the single slot the trending endpoint caches under.
const trendingKey = "trending"

// TrendingCache serves a previously computed trending list while it is
// still fresh. The slot is replaced wholesale on every Put; there is no
// write-side invalidation, staleness is bounded by the TTL alone.
type TrendingCache struct {
	cache Cache
	ttl   time.Duration
}

// NewTrendingCache wraps a Cache with the trending single-slot contract.
func NewTrendingCache(cache Cache, ttl time.Duration) *TrendingCache {
	return &TrendingCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Get returns the cached list if the slot is still fresh. The second
// return reports a hit; an expired or absent slot is a miss.
func (t *TrendingCache) Get(ctx context.Context) ([]models.Summary, bool) {
	value, found := t.cache.Get(ctx, trendingKey)
	if !found {
		return nil, false
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil, false
	}

	var list []models.Summary
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

// Put overwrites the slot with a freshly computed list.
func (t *TrendingCache) Put(ctx context.Context, list []models.Summary) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return t.cache.Set(ctx, trendingKey, data, t.ttl)
}
