package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Memory cache sizing defaults.
const (
	DefaultMemoryMaxBytes   = 64 << 20
	DefaultMemoryMaxEntries = 4096
)

// MemoryCache is a size-bounded in-process cache backed by ristretto.
// The cost of an entry is its length in bytes.
type MemoryCache struct {
	cache *ristretto.Cache
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache holding at most maxBytes of data in roughly
// maxEntries entries. Non-positive arguments select the defaults.
func NewMemoryCache(maxBytes, maxEntries int64) (*MemoryCache, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMemoryMaxBytes
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryMaxEntries
	}
	// ristretto wants about ten counters per entry
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: max(maxEntries*10, 1000),
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: c}, nil
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	item, ok := v.(*memoryItem)
	if !ok || (!item.expiresAt.IsZero() && time.Now().After(item.expiresAt)) {
		c.cache.Del(key)
		return nil, false, nil
	}
	return item.data, true, nil
}

// Set stores a value. It blocks until the value is visible to Get; an entry
// rejected by the admission policy is dropped silently.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	item := &memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}
	c.cache.Set(key, item, int64(len(data)))
	c.cache.Wait()
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.cache.Del(key)
	return nil
}

// Clear removes all values.
func (c *MemoryCache) Clear() {
	c.cache.Clear()
}

// Close stops the cache's background goroutines.
func (c *MemoryCache) Close() error {
	c.cache.Close()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
