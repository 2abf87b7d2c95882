package query

import (
	"sort"
	"strings"

	"planillas/app/record"
)

// NoSortField marks a sort state with no active field
const NoSortField = -1

// Compare orders two cell values: numerically when both are numbers,
// otherwise by case-insensitive text with absent values as the empty
// string.
func Compare(a, b record.Value) int {
	x, xok := a.Float()
	y, yok := b.Float()
	if xok && yok {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Lower(), b.Lower())
}

// SortRows returns a new slice ordered by field. Equal keys keep their
// input order in both directions. The input slice is never modified.
func SortRows(rows []*record.Row, field int, dir SortDirection) []*record.Row {
	out := make([]*record.Row, len(rows))
	copy(out, rows)
	if field < 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(out[i].Get(field), out[j].Get(field))
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// SortState is the active sort of a view
type SortState struct {
	Field     int
	Direction SortDirection
}

// NewSortState returns an inactive sort state
func NewSortState() SortState {
	return SortState{Field: NoSortField, Direction: Ascending}
}

// Active reports whether a field is selected
func (s SortState) Active() bool { return s.Field >= 0 }

// Toggle flips direction when field is already active, otherwise selects
// field ascending
func (s SortState) Toggle(field int) SortState {
	if s.Field == field {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return s
	}
	return SortState{Field: field, Direction: Ascending}
}

// Clear returns the inactive state
func (s SortState) Clear() SortState { return NewSortState() }
