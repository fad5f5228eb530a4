// Package cache is a get-or-set cache with TTL, used cache-aside by the
// entity services. Invalidation is coarse: writers drop whole key
// families by prefix rather than chasing individual entries.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is the storage-agnostic contract. Values are JSON-encoded, so
// anything marshalable can be cached. Best-effort only: a failed
// invalidation leaves stale data bounded by the remaining TTL.
type Cache interface {
	// Get unmarshals the cached value into dest, reporting a hit.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Del removes specific keys.
	Del(ctx context.Context, keys ...string) error

	// DelByPrefix removes every key starting with prefix.
	DelByPrefix(ctx context.Context, prefix string) error
}

// Config selects and configures a backend.
type Config struct {
	Type     string // redis, memory
	Addr     string
	Password string
	DB       int
}

// New creates a cache instance based on configuration.
func New(cfg Config) (Cache, error) {
	switch cfg.Type {
	case "redis":
		return NewRedisCache(cfg)
	case "memory":
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// GetOrSet returns the cached value for key, or runs factory, caches
// its result for ttl and returns it. Cache failures fall through to the
// factory; the cache never makes a read fail.
func GetOrSet[T any](ctx context.Context, c Cache, key string, ttl time.Duration, factory func() (T, error)) (T, error) {
	var cached T
	if hit, err := c.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	value, err := factory()
	if err != nil {
		return value, err
	}

	_ = c.Set(ctx, key, value, ttl)
	return value, nil
}

// Key joins parts into a cache key: Key("applications", "id", x).
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
