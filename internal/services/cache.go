package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	// PageKeyPrefix is the Redis key prefix for cached page payloads
	PageKeyPrefix = "page:"
	// RevalidationChannel carries every invalidated path
	RevalidationChannel = "pages:revalidated"
	// DefaultPageTTL applies when no TTL is configured
	DefaultPageTTL = 10 * time.Minute
)

// PageCache stores the JSON payload served for a page path and drops it
// when the content behind the path changes.
type PageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPageCache(rdb *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{rdb: rdb, ttl: ttl}
}

// Get loads a cached value into dest. A miss is not an error.
func (c *PageCache) Get(ctx context.Context, path string, dest interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, PageKeyPrefix+path).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PageCacheLookup(false)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	metrics.PageCacheLookup(true)
	return true, nil
}

func (c *PageCache) Set(ctx context.Context, path string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, PageKeyPrefix+path, data, c.ttl).Err()
}

// Revalidate deletes the cached paths and announces them on
// RevalidationChannel.
func (c *PageCache) Revalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = PageKeyPrefix + p
	}

	pipe := c.rdb.Pipeline()
	pipe.Del(ctx, keys...)
	for _, p := range paths {
		pipe.Publish(ctx, RevalidationChannel, p)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	metrics.PagesRevalidated(len(paths))
	return nil
}
