package report

import "sort"

// tally groups stats by label and remembers first-seen order so rankings
// break ties deterministically
type tally[T any] struct {
	order []string
	m     map[string]*T
}

func newTally[T any]() *tally[T] {
	return &tally[T]{m: make(map[string]*T)}
}

// at returns the stats for key, creating them on first use
func (t *tally[T]) at(key string) *T {
	if s, ok := t.m[key]; ok {
		return s
	}
	s := new(T)
	t.m[key] = s
	t.order = append(t.order, key)
	return s
}

func (t *tally[T]) get(key string) (*T, bool) {
	s, ok := t.m[key]
	return s, ok
}

func (t *tally[T]) len() int { return len(t.order) }

// Entry is one labelled value of a ranking or series
type Entry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// entries projects every group, keeping first-seen order, skipping groups
// for which keep returns false
func entries[T any](t *tally[T], value func(*T) float64, keep func(*T) bool) []Entry {
	out := make([]Entry, 0, t.len())
	for _, k := range t.order {
		s := t.m[k]
		if keep != nil && !keep(s) {
			continue
		}
		out = append(out, Entry{Label: k, Value: value(s)})
	}
	return out
}

// topN sorts entries by descending value, ties keeping input order, and
// returns at most n of them
func topN(in []Entry, n int) []Entry {
	out := append([]Entry(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// countTally is a tally of plain counters
type countTally = tally[int]

func inc(t *countTally, key string) {
	*t.at(key)++
}

func counts(t *countTally) []Entry {
	return entries(t, func(c *int) float64 { return float64(*c) }, nil)
}
