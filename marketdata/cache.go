package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// QuoteCache is a read-through cache for serialized quote sets.
type QuoteCache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// QuoteLoader supplies quote sets on cache misses. *Store implements it.
type QuoteLoader interface {
	QuotesAsOf(ctx context.Context, name string, asOf time.Time) (QuoteSet, error)
}

// RedisQuoteCache backs QuoteCache with Redis.
type RedisQuoteCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

func NewRedisQuoteCache(addr string, ttl time.Duration) *RedisQuoteCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisQuoteCache{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

func (r *RedisQuoteCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisQuoteCache) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}

// MemoryQuoteCache is a map-backed cache for development and testing.
type MemoryQuoteCache struct {
	data map[string]string
}

func NewMemoryQuoteCache() *MemoryQuoteCache {
	return &MemoryQuoteCache{data: make(map[string]string)}
}

func (m *MemoryQuoteCache) Get(key string) (string, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *MemoryQuoteCache) Set(key, value string) error {
	m.data[key] = value
	return nil
}

// CacheKey is the cache key under which a quote set is stored.
func CacheKey(name string, asOf time.Time) string {
	return fmt.Sprintf("zeroquotes:%s:%s", name, asOf.Format(dateLayout))
}

// LoadQuotesCached reads a quote set through the cache, falling back to the
// loader and writing back on a miss. Cache write failures are logged, not
// fatal; a corrupt cache entry triggers a reload.
func LoadQuotesCached(ctx context.Context, cache QuoteCache, loader QuoteLoader, name string, asOf time.Time, logger zerolog.Logger) (QuoteSet, error) {
	key := CacheKey(name, asOf)

	if raw, ok := cache.Get(key); ok {
		var set QuoteSet
		if err := json.Unmarshal([]byte(raw), &set); err == nil {
			return set, nil
		}
		logger.Warn().Str("key", key).Msg("corrupt cache entry, reloading")
	}

	set, err := loader.QuotesAsOf(ctx, name, asOf)
	if err != nil {
		return QuoteSet{}, err
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return QuoteSet{}, fmt.Errorf("LoadQuotesCached: marshal: %w", err)
	}
	if err := cache.Set(key, string(raw)); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return set, nil
}
