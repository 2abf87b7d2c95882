package dashboard

import (
	"time"

	"github.com/google/uuid"

	"planillas/app/cache"
	"planillas/app/facets"
	"planillas/app/query"
	"planillas/app/record"
	"planillas/app/report"
)

// recompute rebuilds the snapshot from the current state. A full
// recompute resolves facets and rebuilds reports; a view recompute (sort
// or page change) reuses both and only re-runs the sort and page stages.
// The caller holds d.mu for writing.
func (d *Dashboard) recompute(full bool) (*Snapshot, error) {
	start := time.Now()
	prev := d.snapshot
	if prev == nil {
		full = true
	}
	pass := uuid.NewString()
	logger := d.logger.With().Str("pass", pass).Logger()

	var res *facets.Resolution
	if full {
		r, err := facets.Resolve(d.cfg.ctx, d.index, d.state)
		if err != nil {
			return nil, err
		}
		res = r
		if len(res.Pruned) > 0 {
			logger.Debug().
				Int("pruned", len(res.Pruned)).
				Int("passes", res.Passes).
				Msg("[RESOLVE] dropped unreachable selections")
		}
	} else {
		res = prev.resolution
	}

	key := d.state.Key()
	out, err := query.NewQueryPipeline(d.cfg.ctx, d.dataset.Fingerprint(), d.results, logger).
		AddStage(query.NewFilterStage(key, d.index.Matcher(d.state))).
		AddStage(query.NewSortStage(d.sort)).
		AddStage(query.NewPageStage(d.page, d.cfg.pageSize)).
		Execute(d.dataset.Rows())
	if err != nil {
		return nil, err
	}
	filtered := out.Outputs[0].Rows

	var summary *report.Summary
	if full {
		summary = d.buildSummary(key, filtered)
	} else {
		summary = prev.Summary
	}

	d.seq++
	d.page = out.Page.Page
	if d.page == 0 {
		d.page = 1
	}
	snap := &Snapshot{
		Pass:       pass,
		Seq:        d.seq,
		StateKey:   key,
		Facets:     buildFacetOptions(res, d.state),
		Chips:      d.state.Chips(),
		Queries:    d.queries(),
		Sort:       d.sort,
		Filtered:   filtered,
		Sorted:     out.View,
		Page:       *out.Page,
		PageRows:   out.Rows,
		Summary:    summary,
		Empty:      len(filtered) == 0,
		Elapsed:    time.Since(start),
		resolution: res,
	}
	if full {
		snap.Pruned = res.Pruned
	}
	if snap.Empty {
		snap.Warning = EmptyResultWarning
	}
	d.snapshot = snap

	logger.Debug().
		Bool("full", full).
		Int("rows", len(filtered)).
		Int("page", snap.Page.Page).
		Bool("cached", out.Cached).
		Dur("elapsed", snap.Elapsed).
		Msg("[RECOMPUTE] snapshot ready")
	return snap, nil
}

// buildSummary accumulates the filtered view once and builds the
// variant's reports. Summaries are cached per filter state.
func (d *Dashboard) buildSummary(key string, rows []*record.Row) *report.Summary {
	cacheKey := cache.JoinKey(query.DatasetKey(d.dataset.Fingerprint()), cache.Segment("summary", key))
	if s, ok := d.summaries.Get(cacheKey); ok {
		return s
	}
	s := report.Build(report.Accumulate(rows, d.variant.Report), d.variant.Reports)
	d.summaries.Put(cacheKey, s)
	return s
}

func (d *Dashboard) queries() map[string]string {
	out := make(map[string]string, len(d.variant.Searches))
	for _, g := range d.variant.Searches {
		if q := d.state.Query(g.Key); q != "" {
			out[g.Key] = q
		}
	}
	return out
}
