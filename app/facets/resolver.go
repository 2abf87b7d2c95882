package facets

import (
	"context"
	"runtime"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/sourcegraph/conc/pool"

	"planillas/app/record"
)

// Resolution holds the option list of every facet for one state
type Resolution struct {
	order   []string
	options map[string][]record.Value
	counts  map[string]map[record.Value]int
	// Passes is the number of resolver passes needed to reach a state with
	// no invalid selections
	Passes int
	// Pruned lists the selections dropped because they became unreachable
	Pruned []Chip
}

// Options returns the selectable values of a facet
func (r *Resolution) Options(key string) ([]record.Value, error) {
	opts, ok := r.options[key]
	if !ok {
		return nil, &UnknownFacetError{Key: key}
	}
	return opts, nil
}

// Count returns how many rows of the facet's context carry v
func (r *Resolution) Count(key string, v record.Value) int {
	return r.counts[key][v]
}

// Has reports whether v is a selectable option of the facet
func (r *Resolution) Has(key string, v record.Value) bool {
	_, ok := r.counts[key][v]
	return ok
}

// Keys returns the facet keys in registry order
func (r *Resolution) Keys() []string { return r.order }

// SearchOptions narrows a facet's displayed options to those whose text
// contains query (case-insensitive). It never affects selections.
func (r *Resolution) SearchOptions(key, query string) ([]record.Value, error) {
	opts, err := r.Options(key)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return opts, nil
	}
	out := make([]record.Value, 0, len(opts))
	for _, v := range opts {
		if strings.Contains(v.Lower(), q) {
			out = append(out, v)
		}
	}
	return out, nil
}

type facetOptions struct {
	pos    int
	values []record.Value
	counts map[record.Value]int
}

// Resolve computes, for every facet, the values reachable under all other
// facets and the active searches, then drops selections that are no longer
// reachable. Facets are checked one at a time in registry order and each
// check sees the selections already dropped before it, so of two
// selections that rule each other out the later one survives. Sweeps
// repeat until one drops nothing; the returned option lists always match
// the final state. st is modified in place.
func Resolve(ctx context.Context, idx *Index, st *State) (*Resolution, error) {
	search := idx.searchBitmap(st)
	selections := make([]*roaring.Bitmap, len(idx.facets))
	for i := range idx.facets {
		selections[i] = idx.selectionBitmap(i, st)
	}

	res := &Resolution{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Passes++
		pruned := idx.prunePass(st, selections, search)
		res.Pruned = append(res.Pruned, pruned...)
		if len(pruned) == 0 {
			break
		}
	}

	computed, err := resolveOptions(ctx, idx, selections, search)
	if err != nil {
		return nil, err
	}
	res.order = make([]string, len(idx.facets))
	res.options = make(map[string][]record.Value, len(idx.facets))
	res.counts = make(map[string]map[record.Value]int, len(idx.facets))
	for _, fo := range computed {
		key := idx.facets[fo.pos].def.Key
		res.order[fo.pos] = key
		res.options[key] = fo.values
		res.counts[key] = fo.counts
	}
	return res, nil
}

// prunePass walks the facets in registry order and drops the selected
// values with no row in the facet's context. selections is updated as
// values are dropped, so later facets see the earlier drops.
func (x *Index) prunePass(st *State, selections []*roaring.Bitmap, search *roaring.Bitmap) []Chip {
	var pruned []Chip
	for pos, fi := range x.facets {
		if selections[pos] == nil {
			continue
		}
		reach := x.contextBitmap(selections, search, pos)
		dropped := false
		for _, v := range st.Selected(fi.def.Key) {
			if bm, ok := fi.bitmaps[v]; ok && bm.Intersects(reach) {
				continue
			}
			delete(st.selections[fi.def.Key], v)
			pruned = append(pruned, Chip{FacetKey: fi.def.Key, Label: fi.def.Label, Value: v})
			dropped = true
		}
		if dropped {
			selections[pos] = x.selectionBitmap(pos, st)
		}
	}
	return pruned
}

// resolveOptions lists every facet's options against a settled state.
// Facets are independent, so they run on a bounded pool.
func resolveOptions(ctx context.Context, idx *Index, selections []*roaring.Bitmap, search *roaring.Bitmap) ([]facetOptions, error) {
	p := pool.NewWithResults[facetOptions]().
		WithContext(ctx).
		WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for pos := range idx.facets {
		pos := pos
		p.Go(func(ctx context.Context) (facetOptions, error) {
			if err := ctx.Err(); err != nil {
				return facetOptions{}, err
			}
			return idx.optionsFor(pos, selections, search), nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	ordered := make([]facetOptions, len(idx.facets))
	for _, fo := range results {
		ordered[fo.pos] = fo
	}
	return ordered, nil
}

// optionsFor lists the values of facet pos whose rows intersect the context
// built from every other facet and the search rows
func (x *Index) optionsFor(pos int, selections []*roaring.Bitmap, search *roaring.Bitmap) facetOptions {
	fi := x.facets[pos]
	reach := x.contextBitmap(selections, search, pos)

	fo := facetOptions{pos: pos, counts: make(map[record.Value]int)}
	if reach.IsEmpty() {
		return fo
	}
	for _, v := range fi.values {
		n := fi.bitmaps[v].AndCardinality(reach)
		if n == 0 {
			continue
		}
		fo.values = append(fo.values, v)
		fo.counts[v] = int(n)
	}
	return fo
}
