package facets

import (
	"context"

	"planillas/app/record"
)

// cancelCheckInterval is how many rows are scanned between context checks
const cancelCheckInterval = 1000

// Predicate compiles a state into a row matcher: AND across facets, OR
// within a facet's selection, AND across search groups and their tokens.
// The state is captured by value; later mutations do not affect it.
func Predicate(st *State) func(*record.Row) bool {
	type facetTest struct {
		field int
		set   map[record.Value]struct{}
	}
	type searchTest struct {
		fields []int
		tokens []string
	}

	var facetTests []facetTest
	for _, d := range st.registry.defs {
		set := st.selections[d.Key]
		if len(set) == 0 {
			continue
		}
		cp := make(map[record.Value]struct{}, len(set))
		for v := range set {
			cp[v] = struct{}{}
		}
		facetTests = append(facetTests, facetTest{field: d.Field, set: cp})
	}

	var searchTests []searchTest
	for _, g := range st.groups {
		tokens := st.Tokens(g.Key)
		if len(tokens) == 0 {
			continue
		}
		searchTests = append(searchTests, searchTest{fields: g.Fields, tokens: tokens})
	}

	return func(row *record.Row) bool {
		for _, s := range searchTests {
			if !MatchTokens(Haystack(row, s.fields), s.tokens) {
				return false
			}
		}
		for _, f := range facetTests {
			if _, ok := f.set[row.Get(f.field)]; !ok {
				return false
			}
		}
		return true
	}
}

// Evaluate produces the filtered view: the dataset rows passing every
// active facet and search, in dataset order. Rows are referenced, not
// copied. An empty result is valid.
func Evaluate(ctx context.Context, ds *record.Dataset, st *State) ([]*record.Row, error) {
	match := Predicate(st)
	rows := ds.Rows()
	out := make([]*record.Row, 0, len(rows))
	for i, row := range rows {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if match(row) {
			out = append(out, row)
		}
	}
	return out, nil
}
