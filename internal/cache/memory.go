package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps generations in process memory with TTL eviction.
// Fast path of the layered cache; contents do not survive the process.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache. Entries without an explicit
// TTL fall back to defaultTTL; expired entries are purged on the
// cleanup interval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	return data, ok
}

func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

func (m *MemoryCache) Clear() error {
	m.store.Flush()
	return nil
}
