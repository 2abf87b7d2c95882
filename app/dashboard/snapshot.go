package dashboard

import (
	"time"

	"planillas/app/facets"
	"planillas/app/query"
	"planillas/app/record"
	"planillas/app/report"
)

// EmptyResultWarning is shown when the filters exclude every record
const EmptyResultWarning = "no records match the active filters"

// FacetOptions is the option list of one facet after a recompute
type FacetOptions struct {
	Key      string
	Label    string
	Values   []record.Value
	Counts   []int // rows per value in the facet's context
	Selected []record.Value
}

// Snapshot is the immutable result of one recompute. Row slices reference
// dataset rows and must not be modified.
type Snapshot struct {
	// Pass identifies the recompute that produced the snapshot
	Pass string
	// Seq increases with every recompute of the dashboard
	Seq      uint64
	StateKey string
	Facets   []FacetOptions
	Chips    []facets.Chip
	Queries  map[string]string
	Sort     query.SortState

	// Filtered is the unsorted filtered view every report reads
	Filtered []*record.Row
	Sorted   []*record.Row
	Page     query.PageInfo
	PageRows []*record.Row

	Summary *report.Summary
	Empty   bool
	Warning string
	// Pruned lists selections dropped because they became unreachable
	Pruned  []facets.Chip
	Elapsed time.Duration

	resolution *facets.Resolution
}

// Options returns the option list of a facet
func (s *Snapshot) Options(key string) ([]record.Value, error) {
	return s.resolution.Options(key)
}

// Facet returns the options of one facet
func (s *Snapshot) Facet(key string) (FacetOptions, bool) {
	for _, f := range s.Facets {
		if f.Key == key {
			return f, true
		}
	}
	return FacetOptions{}, false
}

func buildFacetOptions(res *facets.Resolution, st *facets.State) []FacetOptions {
	defs := st.Registry().All()
	out := make([]FacetOptions, 0, len(defs))
	for _, d := range defs {
		values, _ := res.Options(d.Key)
		counts := make([]int, len(values))
		for i, v := range values {
			counts[i] = res.Count(d.Key, v)
		}
		out = append(out, FacetOptions{
			Key:      d.Key,
			Label:    d.Label,
			Values:   values,
			Counts:   counts,
			Selected: st.Selected(d.Key),
		})
	}
	return out
}
