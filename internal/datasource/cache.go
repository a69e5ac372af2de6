package datasource

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// FetchCache provides in-memory TTL caching for fetched provider payloads
type FetchCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewFetchCache creates a new fetch cache
func NewFetchCache(ttl time.Duration) *FetchCache {
	return &FetchCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Key builds a namespaced cache key
func Key(source, kind string, parts ...string) string {
	key := source + ":" + kind
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Get retrieves a cached payload
func (fc *FetchCache) Get(key string) (interface{}, bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if value, found := fc.cache.Get(key); found {
		fc.hitCount++
		return value, true
	}
	fc.missCount++
	return nil, false
}

// Set stores a payload in the cache
func (fc *FetchCache) Set(key string, value interface{}) {
	fc.cache.Set(key, value, fc.ttl)
}

// Flush removes all cached payloads
func (fc *FetchCache) Flush() {
	fc.cache.Flush()
}

// HitRate returns the fraction of lookups served from cache
func (fc *FetchCache) HitRate() float64 {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	total := fc.hitCount + fc.missCount
	if total == 0 {
		return 0
	}
	return float64(fc.hitCount) / float64(total)
}

// Stats returns hit/miss counts as a formatted string
func (fc *FetchCache) Stats() string {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fmt.Sprintf("hits=%d misses=%d items=%d", fc.hitCount, fc.missCount, fc.cache.ItemCount())
}
