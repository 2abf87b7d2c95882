package cache

import "time"

const (
	// DefaultMaxEntries bounds a cache built without an explicit limit
	DefaultMaxEntries = 64
)

// Config controls whether results are cached and how many are kept
type Config struct {
	Enabled    bool
	MaxEntries int
}

// DefaultConfig returns caching enabled with DefaultMaxEntries slots
func DefaultConfig() Config {
	return Config{Enabled: true, MaxEntries: DefaultMaxEntries}
}

// Stats contains cache counters
type Stats struct {
	Entries    int
	MaxEntries int
	Hits       int64
	Misses     int64
	Evictions  int64
	HitRate    float64 // hits / (hits + misses), 0 when unused
}

// entry is one cached value
type entry[V any] struct {
	value    V
	storedAt time.Time
}
