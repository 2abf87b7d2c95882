package facets

import (
	"github.com/RoaringBitmap/roaring"

	"planillas/app/record"
)

// facetIndex holds, for one facet, the rows carrying each distinct value
type facetIndex struct {
	def     Definition
	values  []record.Value // distinct non-blank values in option order
	bitmaps map[record.Value]*roaring.Bitmap
}

// Index is an inverted index over an immutable dataset: one bitmap of row
// positions per distinct facet value, plus pre-lowered search haystacks.
// It is built once per dataset and variant and only read afterwards.
type Index struct {
	dataset   *record.Dataset
	registry  *Registry
	groups    []SearchGroup
	all       *roaring.Bitmap
	facets    []facetIndex
	haystacks map[string][]string
}

// NewIndex scans the dataset once per facet and search group
func NewIndex(ds *record.Dataset, registry *Registry, groups []SearchGroup) *Index {
	rows := ds.Rows()
	idx := &Index{
		dataset:   ds,
		registry:  registry,
		groups:    groups,
		all:       roaring.New(),
		facets:    make([]facetIndex, registry.Len()),
		haystacks: make(map[string][]string, len(groups)),
	}
	if len(rows) > 0 {
		idx.all.AddRange(0, uint64(len(rows)))
	}

	for i, d := range registry.defs {
		fi := facetIndex{def: d, bitmaps: make(map[record.Value]*roaring.Bitmap)}
		for _, row := range rows {
			v := row.Get(d.Field)
			if v.IsBlank() {
				continue
			}
			bm, ok := fi.bitmaps[v]
			if !ok {
				bm = roaring.New()
				fi.bitmaps[v] = bm
				fi.values = append(fi.values, v)
			}
			bm.Add(uint32(row.Index))
		}
		for _, bm := range fi.bitmaps {
			bm.RunOptimize()
		}
		sortValues(fi.values, d.Order)
		idx.facets[i] = fi
	}

	for _, g := range groups {
		hs := make([]string, len(rows))
		for i, row := range rows {
			hs[i] = Haystack(row, g.Fields)
		}
		idx.haystacks[g.Key] = hs
	}
	return idx
}

// Dataset returns the indexed dataset
func (x *Index) Dataset() *record.Dataset { return x.dataset }

// Registry returns the facet registry
func (x *Index) Registry() *Registry { return x.registry }

// SearchGroups returns the indexed search groups
func (x *Index) SearchGroups() []SearchGroup { return x.groups }

// Values returns every distinct non-blank value of a facet in option order
func (x *Index) Values(key string) ([]record.Value, error) {
	pos := x.registry.position(key)
	if pos < 0 {
		return nil, &UnknownFacetError{Key: key}
	}
	return append([]record.Value(nil), x.facets[pos].values...), nil
}

// searchBitmap returns the rows matching every active search group, or nil
// when no search is active
func (x *Index) searchBitmap(st *State) *roaring.Bitmap {
	var out *roaring.Bitmap
	for _, g := range x.groups {
		tokens := st.Tokens(g.Key)
		if len(tokens) == 0 {
			continue
		}
		bm := roaring.New()
		for i, h := range x.haystacks[g.Key] {
			if MatchTokens(h, tokens) {
				bm.Add(uint32(i))
			}
		}
		if out == nil {
			out = bm
		} else {
			out.And(bm)
		}
	}
	return out
}

// selectionBitmap returns the rows whose value is in the facet's selection
// (OR within the facet), or nil when the facet is inactive
func (x *Index) selectionBitmap(pos int, st *State) *roaring.Bitmap {
	fi := x.facets[pos]
	set := st.selections[fi.def.Key]
	if len(set) == 0 {
		return nil
	}
	parts := make([]*roaring.Bitmap, 0, len(set))
	for v := range set {
		if bm, ok := fi.bitmaps[v]; ok {
			parts = append(parts, bm)
		}
	}
	if len(parts) == 0 {
		return roaring.New()
	}
	return roaring.FastOr(parts...)
}

// contextBitmap intersects the search rows with every active facet except
// skip (-1 keeps all facets)
func (x *Index) contextBitmap(selections []*roaring.Bitmap, search *roaring.Bitmap, skip int) *roaring.Bitmap {
	ctx := x.all.Clone()
	if search != nil {
		ctx.And(search)
	}
	for i, bm := range selections {
		if i == skip || bm == nil {
			continue
		}
		ctx.And(bm)
	}
	return ctx
}

// Matcher compiles a state into a row test backed by the index bitmaps:
// a row passes when it carries every facet and search constraint. Rows are
// identified by their dataset position, so the matcher only applies to rows
// of the indexed dataset.
func (x *Index) Matcher(st *State) func(*record.Row) bool {
	selections := make([]*roaring.Bitmap, len(x.facets))
	for i := range x.facets {
		selections[i] = x.selectionBitmap(i, st)
	}
	bm := x.contextBitmap(selections, x.searchBitmap(st), -1)
	return func(row *record.Row) bool {
		return row.Index >= 0 && bm.Contains(uint32(row.Index))
	}
}
