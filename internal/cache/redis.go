// Package cache provides Redis cache-aside utilities for hot post reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsfeed/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Cache TTLs. Short on purpose: writes invalidate, but likes arriving through
// a second instance would otherwise linger in stale counts.
const (
	PostTTL = 2 * time.Minute
	ListTTL = 30 * time.Second
)

const postsListKey = "posts:list"

// InitRedis initializes the Redis client with the given address. The cache is
// optional; on connection failure the application continues without it.
func InitRedis(addr string) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			middleware.Logger.Warn("invalid REDIS_URL, continuing without cache",
				slog.String("addr", addr), slog.String("error", err.Error()))
			client = nil
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without cache",
			slog.String("error", err.Error()))
		client = nil
		return
	}
	client = c
	middleware.Logger.Info("redis connected", slog.String("addr", opts.Addr))
}

// GetClient returns the current Redis client instance, or nil when caching is disabled.
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the Redis client. Used by tests (miniredis) and by
// bootstrap code that manages the client lifecycle itself.
func SetClient(c *redis.Client) {
	client = c
}

// PostKey returns the cache key for a single post.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// PostsListKey returns the cache key for the default post listing.
func PostsListKey() string {
	return postsListKey
}

// Aside implements the cache-aside pattern: on a hit dest is populated from
// the cached JSON; on a miss fetch must populate dest, which is then cached
// with the given TTL. Cache failures degrade to a plain fetch.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry; drop it and fall through to the fetch.
			client.Del(ctx, key)
		}
	}

	if err := fetch(); err != nil {
		return err
	}

	if client != nil {
		if raw, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}
	return nil
}

// Invalidate removes the given keys from the cache.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.Warn("cache invalidation failed",
			slog.String("keys", strings.Join(keys, ",")),
			slog.String("error", err.Error()))
	}
}

// InvalidatePostsList removes the cached default post listing.
func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}
