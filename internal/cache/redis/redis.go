// Package redis provides a Redis-backed raw cache. Every key is stored under
// a namespace so that Flush never touches keys owned by other programs.
package redis

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arcanaland/arcanum/internal/cache"
)

// Options contains configuration for Redis cache.
type Options struct {
	Addr      string
	Password  string
	DB        int
	Namespace string // defaults to "arcanum:"
}

// Cache is a Redis-backed cache implementation.
type Cache struct {
	client    *redis.Client
	namespace string
}

var _ cache.RawCache = (*Cache)(nil)

const (
	connectionTimeout = 5 * time.Second
	scanBatch         = 100
)

// New connects to Redis and pings it.
func New(opts Options) (*Cache, error) {
	addr := opts.Addr
	if parsedURL, err := url.Parse(opts.Addr); err == nil && parsedURL.Scheme == "redis" {
		addr = parsedURL.Host
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, opts.Namespace), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, namespace string) *Cache {
	if namespace == "" {
		namespace = "arcanum:"
	}
	return &Cache{client: client, namespace: namespace}
}

// Get retrieves an item from the cache.
func (rc *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := rc.client.Get(ctx, rc.namespace+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Set sets an item in the cache with the specified TTL.
func (rc *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return rc.client.Set(ctx, rc.namespace+key, value, ttl).Err()
}

// Delete removes an item from the cache.
func (rc *Cache) Delete(ctx context.Context, key string) error {
	return rc.client.Del(ctx, rc.namespace+key).Err()
}

// DeletePrefix scans for keys under prefix and deletes them in batches.
func (rc *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := rc.client.Scan(ctx, 0, rc.namespace+prefix+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := rc.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return rc.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Flush clears every key in the namespace.
func (rc *Cache) Flush(ctx context.Context) error {
	return rc.DeletePrefix(ctx, "")
}

// Close closes the Redis connection.
func (rc *Cache) Close() error {
	return rc.client.Close()
}
