package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPut(t *testing.T) {
	c := New[int](4, zerolog.Nop())

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v, "put replaces")
	assert.Equal(t, 1, c.Len())

	s := c.Stats()
	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.InDelta(t, 2.0/3.0, s.HitRate, 1e-9)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string](2, zerolog.Nop())
	c.Put("a", "A")
	c.Put("b", "B")
	_, _ = c.Get("a") // b is now the oldest
	c.Put("c", "C")

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, int64(1), c.Stats().Evictions)
	assert.Equal(t, 2, c.Len())
}

func TestInvalidatePrefix(t *testing.T) {
	c := New[int](10, zerolog.Nop())
	c.Put(JoinKey("dataset:x", "filter:a"), 1)
	c.Put(JoinKey("dataset:x", "filter:a", "sort:1"), 2)
	c.Put(JoinKey("dataset:xy", "filter:a"), 3)
	c.Put(JoinKey("dataset:y", "filter:a"), 4)

	assert.Equal(t, 2, c.InvalidatePrefix("dataset:x"))
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(JoinKey("dataset:xy", "filter:a"))
	assert.True(t, ok, "prefix matches whole segments only")
}

func TestNilCacheIsInert(t *testing.T) {
	c := FromConfig[int](Config{Enabled: false}, zerolog.Nop())
	require.Nil(t, c)

	c.Put("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.InvalidatePrefix("a"))
	assert.Equal(t, Stats{}, c.Stats())

	enabled := FromConfig[int](DefaultConfig(), zerolog.Nop())
	require.NotNil(t, enabled)
	assert.Equal(t, DefaultMaxEntries, enabled.Stats().MaxEntries)
}

func TestKeys(t *testing.T) {
	key := JoinKey(Segment("dataset", "abc"), Segment("sort", "3:desc"))
	assert.Equal(t, "dataset:abc|sort:3:desc", key)
	assert.True(t, IsKeyPrefix("dataset:abc", key))
	assert.True(t, IsKeyPrefix(key, key))
	assert.False(t, IsKeyPrefix("dataset:ab", key))
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](16, zerolog.Nop())
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (w*7+i)%40)
				c.Put(key, i)
				_, _ = c.Get(key)
			}
		}(w)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}
