package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a keyed store with per-entry expiry. Implementations must be safe
// for concurrent use. A distributed implementation can replace the in-process
// one without changing callers.
type Cache[K comparable, V any] interface {
	// Get returns the value for key if present and not expired.
	Get(key K) (V, bool)
	// Set stores value under key, replacing any previous entry.
	Set(key K, value V)
	// Invalidate drops key. Missing keys are ignored.
	Invalidate(key K)
	// Purge drops every entry.
	Purge()
}

// TTLCache is an in-process Cache bounded by size and entry age.
type TTLCache[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
	ttl time.Duration
}

// NewTTL creates a TTLCache holding at most size entries, each living for ttl.
// A size of 0 means unbounded.
func NewTTL[K comparable, V any](size int, ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		lru: expirable.NewLRU[K, V](size, nil, ttl),
		ttl: ttl,
	}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
}

func (c *TTLCache[K, V]) Invalidate(key K) {
	c.lru.Remove(key)
}

func (c *TTLCache[K, V]) Purge() {
	c.lru.Purge()
}

// Len reports the number of live entries.
func (c *TTLCache[K, V]) Len() int {
	return c.lru.Len()
}

// TTL returns the configured entry lifetime.
func (c *TTLCache[K, V]) TTL() time.Duration {
	return c.ttl
}
