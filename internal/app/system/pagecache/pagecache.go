// Package pagecache holds built page data for a revalidation window.
//
// A page is built on the first request, served from memory until its window
// elapses, and then rebuilt on the next request. Concurrent requests for a
// page that is being built share the single in-flight build.
package pagecache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jefgalicia/jefsite/internal/app/system/metrics"
	"golang.org/x/sync/singleflight"
)

// BuildFunc produces a page value. cacheable=false serves the value to the
// current callers without storing it, so the next request builds again.
type BuildFunc[T any] func(ctx context.Context) (value T, cacheable bool, err error)

// Cache is a TTL cache of page values keyed by page name.
type Cache[T any] struct {
	name   string
	ttl    time.Duration
	lru    *expirable.LRU[string, T]
	flight singleflight.Group
}

// New creates a cache. A ttl of zero or less keeps entries until they are
// invalidated or the process restarts.
func New[T any](name string, ttl time.Duration, size int) *Cache[T] {
	if size <= 0 {
		size = 16
	}
	return &Cache[T]{
		name: name,
		ttl:  ttl,
		lru:  expirable.NewLRU[string, T](size, nil, ttl),
	}
}

// TTL returns the revalidation window; zero or less means no expiry.
func (c *Cache[T]) TTL() time.Duration { return c.ttl }

// GetOrBuild returns the cached value for key, building it when absent or
// expired.
func (c *Cache[T]) GetOrBuild(ctx context.Context, key string, build BuildFunc[T]) (T, error) {
	if v, ok := c.lru.Get(key); ok {
		metrics.CacheHits.WithLabelValues(c.name).Inc()
		return v, nil
	}
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
	return c.do(ctx, key, build, false)
}

// Refresh rebuilds key regardless of the cached value.
func (c *Cache[T]) Refresh(ctx context.Context, key string, build BuildFunc[T]) (T, error) {
	return c.do(ctx, key, build, true)
}

// Invalidate drops key so the next request rebuilds it.
func (c *Cache[T]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Len returns the number of live entries.
func (c *Cache[T]) Len() int {
	return c.lru.Len()
}

func (c *Cache[T]) do(ctx context.Context, key string, build BuildFunc[T], force bool) (T, error) {
	v, err, _ := c.flight.Do(key, func() (any, error) {
		// Another caller may have stored a value while this one waited.
		if !force {
			if v, ok := c.lru.Peek(key); ok {
				return v, nil
			}
		}
		val, cacheable, err := build(ctx)
		if err != nil {
			return val, err
		}
		if cacheable {
			c.lru.Add(key, val)
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
