package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGetInvalidate(t *testing.T) {
	c := NewTTL[string, int](10, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	c.Set("b", 2)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 3)
	v, _ = c.Get("a")
	assert.Equal(t, 3, v)

	c.Invalidate("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, time.Minute, c.TTL())
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTL[string, string](10, 20*time.Millisecond)
	c.Set("k", "v")

	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(80 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_SizeBound(t *testing.T) {
	c := NewTTL[int, int](2, time.Minute)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)

	_, ok := c.Get(1)
	assert.False(t, ok, "oldest entry should be evicted")
	assert.Equal(t, 2, c.Len())
}

func TestTTLCache_Concurrent(t *testing.T) {
	var c Cache[int, int] = NewTTL[int, int](0, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(n*100+j, j)
				c.Get(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	v, ok := c.Get(1505)
	require.True(t, ok)
	assert.Equal(t, 5, v)
}
