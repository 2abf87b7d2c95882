package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"planillas/app/cache"
	"planillas/app/export"
	"planillas/app/query"
	"planillas/app/settings"
)

// DefaultDebounce is the quiet period before a typed search is applied
const DefaultDebounce = 300 * time.Millisecond

type config struct {
	ctx      context.Context
	logger   zerolog.Logger
	pageSize int
	debounce time.Duration
	cache    cache.Config
	export   export.Options
}

func defaultConfig() config {
	return config{
		ctx:      context.Background(),
		logger:   zerolog.Nop(),
		pageSize: query.DefaultPageSize,
		debounce: DefaultDebounce,
		cache:    cache.DefaultConfig(),
		export:   export.DefaultOptions(),
	}
}

// Option customizes a dashboard
type Option func(*config)

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithContext bounds every recompute; cancelling it fails later mutations
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithPageSize sets the grid page size
func WithPageSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithDebounce sets the typed search quiet period. Zero applies typed
// searches immediately.
func WithDebounce(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.debounce = d
		}
	}
}

// WithCache configures the result and summary caches
func WithCache(cfg cache.Config) Option {
	return func(c *config) { c.cache = cfg }
}

// WithExport sets the spreadsheet options used by Export
func WithExport(opts export.Options) Option {
	return func(c *config) { c.export = opts }
}

// WithSettings applies the runtime settings
func WithSettings(s settings.Settings) Option {
	return func(c *config) {
		WithPageSize(s.PageSize)(c)
		WithDebounce(s.Debounce())(c)
		c.cache = s.CacheConfig()
		if s.Export.Sheet != "" {
			c.export.Sheet = s.Export.Sheet
		}
		if s.Export.FileName != "" {
			c.export.FileName = s.Export.FileName
		}
	}
}
