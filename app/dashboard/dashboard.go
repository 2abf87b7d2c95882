package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"planillas/app/cache"
	"planillas/app/export"
	"planillas/app/facets"
	"planillas/app/format"
	"planillas/app/query"
	"planillas/app/record"
	"planillas/app/report"
	"planillas/app/variant"
)

var (
	// ErrClosed is returned by mutations after Close
	ErrClosed = errors.New("dashboard is closed")
	// ErrNothingToExport is returned when exporting an empty view
	ErrNothingToExport = export.ErrNothingToExport
	// ErrRecordOutOfRange is returned for a record position outside the view
	ErrRecordOutOfRange = errors.New("record position out of range")
	// ErrUnknownField is returned when sorting by an index outside the row layout
	ErrUnknownField = errors.New("unknown field")
)

// Dashboard owns the filter state of one dataset and variant. Every
// mutation and the recompute it triggers run as one step under a single
// writer lock; readers get the last immutable snapshot.
type Dashboard struct {
	id      string
	dataset *record.Dataset
	variant *variant.Variant
	index   *facets.Index
	cfg     config
	logger  zerolog.Logger
	cancel  context.CancelFunc

	results   *query.ResultCache
	summaries *cache.Cache[*report.Summary]

	mu          sync.RWMutex
	state       *facets.State
	sort        query.SortState
	page        int
	seq         uint64
	snapshot    *Snapshot
	subscribers []func(*Snapshot)
	closed      bool

	// typed holds search text waiting for its debouncer to fire
	typed      map[string]string
	debouncers map[string]func(func())
}

// New indexes the dataset for the variant and runs the first recompute
func New(ds *record.Dataset, v *variant.Variant, opts ...Option) (*Dashboard, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if v == nil || v.Registry == nil {
		return nil, fmt.Errorf("variant is nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(cfg.ctx)
	cfg.ctx = ctx
	logger := cfg.logger.With().Str("dashboard", id).Str("variant", v.Name).Logger()

	start := time.Now()
	d := &Dashboard{
		id:         id,
		dataset:    ds,
		variant:    v,
		index:      facets.NewIndex(ds, v.Registry, v.Searches),
		cfg:        cfg,
		logger:     logger,
		cancel:     cancel,
		results:    cache.FromConfig[*query.StageResult](cfg.cache, logger),
		summaries:  cache.FromConfig[*report.Summary](cfg.cache, logger),
		state:      facets.NewState(v.Registry, v.Searches),
		sort:       query.NewSortState(),
		page:       1,
		typed:      make(map[string]string),
		debouncers: make(map[string]func(func()), len(v.Searches)),
	}
	for _, g := range v.Searches {
		d.debouncers[g.Key] = debounce.New(cfg.debounce)
	}
	logger.Info().
		Int("rows", ds.Len()).
		Int("facets", v.Registry.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("[INDEX] dataset indexed")

	d.mu.Lock()
	_, err := d.recompute(true)
	d.mu.Unlock()
	if err != nil {
		cancel()
		return nil, err
	}
	return d, nil
}

// ID returns the dashboard identifier
func (d *Dashboard) ID() string { return d.id }

// Variant returns the dashboard configuration
func (d *Dashboard) Variant() *variant.Variant { return d.variant }

// Dataset returns the indexed dataset
func (d *Dashboard) Dataset() *record.Dataset { return d.dataset }

// Close stops pending debounced searches. Further mutations return
// ErrClosed; reads keep returning the last snapshot.
func (d *Dashboard) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.typed = map[string]string{}
	d.subscribers = nil
	d.cancel()
	prefix := query.DatasetKey(d.dataset.Fingerprint())
	d.logger.Debug().
		Int("results", d.results.InvalidatePrefix(prefix)).
		Int("summaries", d.summaries.InvalidatePrefix(prefix)).
		Msg("[DASHBOARD] closed")
	return nil
}

// Subscribe registers fn to receive every new snapshot. It is called
// outside the dashboard lock, so it may read from the dashboard.
func (d *Dashboard) Subscribe(fn func(*Snapshot)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.subscribers = append(d.subscribers, fn)
	}
}

// Snapshot returns the result of the last recompute
func (d *Dashboard) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Options returns the reachable values of a facet
func (d *Dashboard) Options(key string) ([]record.Value, error) {
	return d.Snapshot().Options(key)
}

// SearchOptions narrows a facet's displayed options by substring
func (d *Dashboard) SearchOptions(key, q string) ([]record.Value, error) {
	return d.Snapshot().resolution.SearchOptions(key, q)
}

// FilteredRows returns the unsorted filtered view
func (d *Dashboard) FilteredRows() []*record.Row { return d.Snapshot().Filtered }

// SortedRows returns the filtered view in grid order
func (d *Dashboard) SortedRows() []*record.Row { return d.Snapshot().Sorted }

// PageRows returns the rows of the current grid page
func (d *Dashboard) PageRows() []*record.Row { return d.Snapshot().PageRows }

// Summary returns the reports of the current filtered view
func (d *Dashboard) Summary() *report.Summary { return d.Snapshot().Summary }

// Record returns the detail view of the record at position i of the
// sorted view
func (d *Dashboard) Record(i int) (format.RecordDetail, error) {
	rows := d.SortedRows()
	if i < 0 || i >= len(rows) {
		return format.RecordDetail{}, fmt.Errorf("%w: %d of %d", ErrRecordOutOfRange, i, len(rows))
	}
	return format.Detail(rows[i]), nil
}

// Export writes the sorted filtered view as a workbook
func (d *Dashboard) Export(w io.Writer) error {
	rows := d.SortedRows()
	if err := export.Write(w, rows, d.cfg.export); err != nil {
		return err
	}
	d.logger.Info().Int("rows", len(rows)).Str("sheet", d.cfg.export.Sheet).Msg("[EXPORT] workbook written")
	return nil
}

// ExportFile writes the sorted filtered view to path, or to the configured
// file name when path is empty
func (d *Dashboard) ExportFile(path string) (string, error) {
	return export.WriteFile(path, d.SortedRows(), d.cfg.export)
}

// CacheStats reports the result cache counters
func (d *Dashboard) CacheStats() cache.Stats {
	return d.results.Stats()
}
