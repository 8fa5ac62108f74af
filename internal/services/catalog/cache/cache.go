// Package cache provides a time-boxed in-memory cache for data source reads.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the lifetime of cached upstream responses.
const DefaultTTL = 5 * time.Minute

// NoExpiry keeps an entry until it is invalidated.
const NoExpiry time.Duration = 0

type entry struct {
	value    any
	storedAt time.Time
}

// Cache stores resolved values keyed by string.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value cached under key when it is younger than ttl, or
// resolves, stores and returns a fresh one. A ttl of NoExpiry never expires.
// Concurrent misses for one key share a single resolve call; failed
// resolutions are not stored.
//
// The shared resolve runs detached from any one caller's cancellation and
// keeps ctx values. A caller whose ctx ends stops waiting with ctx.Err()
// while the resolve completes for the others.
func Get[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, resolve func(context.Context) (T, error)) (T, error) {
	var zero T
	if c == nil {
		return resolve(ctx)
	}
	if value, ok := c.lookup(key, ttl); ok {
		return typed[T](key, value)
	}

	resolveCtx := context.WithoutCancel(ctx)
	results := c.group.DoChan(key, func() (any, error) {
		if value, ok := c.lookup(key, ttl); ok {
			return value, nil
		}
		resolved, err := resolve(resolveCtx)
		if err != nil {
			return nil, err
		}
		c.store(key, resolved)
		return resolved, nil
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return zero, res.Err
		}
		return typed[T](key, res.Val)
	}
}

func typed[T any](key string, value any) (T, error) {
	v, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache key %q holds %T", key, value)
	}
	return v, nil
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key string, value any) {
	if c == nil {
		return
	}
	c.store(key, value)
}

// Contains reports whether key has an entry, expired or not.
func (c *Cache) Contains(key string) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string, ttl time.Duration) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if ttl != NoExpiry && c.now().Sub(e.storedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mu.Unlock()
}
