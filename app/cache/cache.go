package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Cache is a bounded LRU map of computed results keyed by composite string
// keys. Cached values are shared between readers and must be treated as
// immutable.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]*entry[V]
	lru        *lruList
	maxEntries int
	logger     zerolog.Logger

	hits      int64
	misses    int64
	evictions int64
}

// New creates a cache holding at most maxEntries values
func New[V any](maxEntries int, logger zerolog.Logger) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache[V]{
		entries:    make(map[string]*entry[V]),
		lru:        newLRUList(),
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// FromConfig returns a cache for cfg, or nil when caching is disabled. A
// nil *Cache is valid and never stores anything.
func FromConfig[V any](cfg Config, logger zerolog.Logger) *Cache[V] {
	if !cfg.Enabled {
		return nil
	}
	return New[V](cfg.MaxEntries, logger)
}

// Get retrieves a value and marks it as recently used
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		c.logger.Debug().Str("key", key).Msg("[CACHE_MISS]")
		return zero, false
	}
	c.hits++
	c.lru.touch(key)
	c.logger.Debug().
		Str("key", key).
		Dur("age", time.Since(e.storedAt)).
		Msg("[CACHE_HIT]")
	return e.value, true
}

// Put stores a value, evicting least recently used entries beyond the limit
func (c *Cache[V]) Put(key string, value V) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry[V]{value: value, storedAt: time.Now()}
	c.lru.touch(key)
	c.logger.Debug().Str("key", key).Msg("[CACHE_STORE]")

	for c.lru.len() > c.maxEntries {
		oldest, ok := c.lru.oldest()
		if !ok {
			break
		}
		c.lru.remove(oldest)
		delete(c.entries, oldest)
		c.evictions++
		c.logger.Debug().Str("key", oldest).Msg("[CACHE_EVICT]")
	}
}

// InvalidatePrefix drops every entry whose key starts with the whole
// segments of prefix and returns how many were removed
func (c *Cache[V]) InvalidatePrefix(prefix string) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if IsKeyPrefix(prefix, key) {
			c.lru.remove(key)
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug().Str("prefix", prefix).Int("removed", removed).Msg("[CACHE_INVALIDATE]")
	}
	return removed
}

// Len returns the number of cached entries
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the counters
func (c *Cache[V]) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Entries:    len(c.entries),
		MaxEntries: c.maxEntries,
		Hits:       c.hits,
		Misses:     c.misses,
		Evictions:  c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}
