// Package cache is a JSON read-through cache over Redis.
//
// A Cache with no client (Redis unreachable or not configured) is a valid
// no-op: every Get is a miss and every write succeeds.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/metrics"
)

// Cache wraps a redis client with a default TTL.
type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// New returns a cache over rdb. rdb may be nil.
func New(rdb redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Connect dials Redis and verifies the connection with a ping. On failure
// the returned error explains why and the cache is a no-op.
func Connect(ctx context.Context, addr, password string, ttl time.Duration) (*Cache, func() error, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return New(nil, ttl), func() error { return nil }, fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb, ttl), rdb.Close, nil
}

// Enabled reports whether a Redis client is attached.
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get unmarshals the value at key into dest. Returns true on a hit.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(val, dest) != nil {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(key).Inc()
	return true
}

// Set stores value under key for the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Forget removes keys.
func (c *Cache) Forget(ctx context.Context, keys ...string) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
