package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// inMemoryCacheItem represents a cache item with expiration.
type inMemoryCacheItem struct {
	value      []byte
	expiration time.Time
}

func (i *inMemoryCacheItem) isExpired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// InMemoryCache is a thread-safe in-memory cache.
type InMemoryCache struct {
	items     sync.Map // map[string]*inMemoryCacheItem
	closeOnce sync.Once
	stopClean chan struct{}
	now       func() time.Time
}

const defaultCleanupInterval = 5 * time.Minute

// NewInMemoryCache creates an in-memory cache and starts its cleanup loop.
func NewInMemoryCache() *InMemoryCache {
	c := &InMemoryCache{
		stopClean: make(chan struct{}),
		now:       time.Now,
	}
	go c.startCleanup(defaultCleanupInterval)
	return c
}

func (c *InMemoryCache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopClean:
			return
		}
	}
}

func (c *InMemoryCache) cleanup() {
	now := c.now()
	c.items.Range(func(key, value any) bool {
		if item, ok := value.(*inMemoryCacheItem); ok && item.isExpired(now) {
			c.items.Delete(key)
		}
		return true
	})
}

// Get retrieves an item from the cache.
func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c.items.Load(key)
	if !ok {
		return nil, false, nil
	}
	item, ok := value.(*inMemoryCacheItem)
	if !ok || item.isExpired(c.now()) {
		c.items.Delete(key)
		return nil, false, nil
	}
	return item.value, true, nil
}

// Set sets an item in the cache with the specified TTL.
func (c *InMemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := &inMemoryCacheItem{value: value}
	if ttl > 0 {
		item.expiration = c.now().Add(ttl)
	}
	c.items.Store(key, item)
	return nil
}

// Delete removes an item from the cache.
func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// DeletePrefix removes every item whose key starts with prefix.
func (c *InMemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.items.Range(func(key, _ any) bool {
		if k, ok := key.(string); ok && strings.HasPrefix(k, prefix) {
			c.items.Delete(key)
		}
		return true
	})
	return nil
}

// Flush clears all items from the cache.
func (c *InMemoryCache) Flush(ctx context.Context) error {
	return c.DeletePrefix(ctx, "")
}

// Close stops the cleanup goroutine.
func (c *InMemoryCache) Close() error {
	c.closeOnce.Do(func() { close(c.stopClean) })
	return nil
}
