package facets

import (
	"sort"
	"strconv"
	"strings"

	"planillas/app/record"
)

// Chip is one active (facet, value) selection, shown as a removable tag
type Chip struct {
	FacetKey string
	Label    string
	Value    record.Value
}

// State holds the selected values per facet and the raw query per search
// group. It is owned by a single dashboard and is not safe for concurrent
// mutation; readers use Clone.
type State struct {
	registry   *Registry
	groups     []SearchGroup
	selections map[string]map[record.Value]struct{}
	queries    map[string]string
}

// NewState creates an empty state for the given facets and search groups
func NewState(registry *Registry, groups []SearchGroup) *State {
	s := &State{
		registry:   registry,
		groups:     append([]SearchGroup(nil), groups...),
		selections: make(map[string]map[record.Value]struct{}, registry.Len()),
		queries:    make(map[string]string, len(groups)),
	}
	for _, d := range registry.defs {
		s.selections[d.Key] = make(map[record.Value]struct{})
	}
	for _, g := range groups {
		s.queries[g.Key] = ""
	}
	return s
}

// Registry returns the facet registry the state was built for
func (s *State) Registry() *Registry { return s.registry }

// SearchGroups returns the configured search groups
func (s *State) SearchGroups() []SearchGroup { return s.groups }

func (s *State) set(key string) (map[record.Value]struct{}, error) {
	set, ok := s.selections[key]
	if !ok {
		return nil, &UnknownFacetError{Key: key}
	}
	return set, nil
}

// Toggle adds v to the facet's selection, or removes it when present
func (s *State) Toggle(key string, v record.Value) error {
	set, err := s.set(key)
	if err != nil {
		return err
	}
	if _, ok := set[v]; ok {
		delete(set, v)
	} else {
		set[v] = struct{}{}
	}
	return nil
}

// Select adds v to the facet's selection
func (s *State) Select(key string, v record.Value) error {
	set, err := s.set(key)
	if err != nil {
		return err
	}
	set[v] = struct{}{}
	return nil
}

// Deselect removes v from the facet's selection
func (s *State) Deselect(key string, v record.Value) error {
	set, err := s.set(key)
	if err != nil {
		return err
	}
	delete(set, v)
	return nil
}

// ClearFacet empties one facet's selection
func (s *State) ClearFacet(key string) error {
	set, err := s.set(key)
	if err != nil {
		return err
	}
	clear(set)
	return nil
}

// IsSelected reports whether v is selected in facet key
func (s *State) IsSelected(key string, v record.Value) bool {
	_, ok := s.selections[key][v]
	return ok
}

// Active reports whether the facet constrains rows (non-empty selection)
func (s *State) Active(key string) bool {
	return len(s.selections[key]) > 0
}

// SelectionCount returns how many values are selected in facet key
func (s *State) SelectionCount(key string) int {
	return len(s.selections[key])
}

// Selected returns the facet's selected values ordered by text
func (s *State) Selected(key string) []record.Value {
	set := s.selections[key]
	out := make([]record.Value, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sortValues(out, OrderAscending)
	return out
}

// SetQuery stores the raw query of a search group
func (s *State) SetQuery(group, query string) error {
	if _, ok := s.queries[group]; !ok {
		return &UnknownSearchError{Key: group}
	}
	s.queries[group] = query
	return nil
}

// Query returns the raw query of a search group
func (s *State) Query(group string) string {
	return s.queries[group]
}

// Tokens returns the normalized tokens of a search group's query
func (s *State) Tokens(group string) []string {
	return Tokenize(s.queries[group])
}

// HasSearch reports whether any search group has at least one token
func (s *State) HasSearch() bool {
	for _, g := range s.groups {
		if len(s.Tokens(g.Key)) > 0 {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no facet and no search constrains rows
func (s *State) IsEmpty() bool {
	for _, set := range s.selections {
		if len(set) > 0 {
			return false
		}
	}
	return !s.HasSearch()
}

// Clear empties every selection and every query
func (s *State) Clear() {
	for _, set := range s.selections {
		clear(set)
	}
	for k := range s.queries {
		s.queries[k] = ""
	}
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	c := &State{
		registry:   s.registry,
		groups:     s.groups,
		selections: make(map[string]map[record.Value]struct{}, len(s.selections)),
		queries:    make(map[string]string, len(s.queries)),
	}
	for k, set := range s.selections {
		cs := make(map[record.Value]struct{}, len(set))
		for v := range set {
			cs[v] = struct{}{}
		}
		c.selections[k] = cs
	}
	for k, q := range s.queries {
		c.queries[k] = q
	}
	return c
}

// Chips lists the active selections in registry order, then value order
func (s *State) Chips() []Chip {
	var chips []Chip
	for _, d := range s.registry.defs {
		for _, v := range s.Selected(d.Key) {
			chips = append(chips, Chip{FacetKey: d.Key, Label: d.Label, Value: v})
		}
	}
	return chips
}

// Key renders the state canonically. Equal states produce equal keys;
// query whitespace and case do not matter.
func (s *State) Key() string {
	var b strings.Builder
	for _, d := range s.registry.defs {
		sel := s.Selected(d.Key)
		if len(sel) == 0 {
			continue
		}
		b.WriteString(d.Key)
		b.WriteByte('=')
		for i, v := range sel {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(v.Kind().String()[:1])
			b.WriteString(strconv.Quote(v.Text()))
		}
		b.WriteByte(';')
	}
	for _, g := range s.groups {
		toks := s.Tokens(g.Key)
		if len(toks) == 0 {
			continue
		}
		b.WriteString("q:")
		b.WriteString(g.Key)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(strings.Join(toks, " ")))
		b.WriteByte(';')
	}
	return b.String()
}

// sortValues orders values by text; ties (a number and a string with the
// same text) put numbers first so the order is total
func sortValues(values []record.Value, order OptionOrder) {
	sort.Slice(values, func(i, j int) bool {
		a, b := values[i].Text(), values[j].Text()
		if a == b {
			return values[i].Kind() > values[j].Kind()
		}
		if order == OrderDescending {
			return a > b
		}
		return a < b
	})
}
