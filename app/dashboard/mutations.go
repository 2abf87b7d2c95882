package dashboard

import (
	"fmt"
	"slices"

	"planillas/app/facets"
	"planillas/app/record"
)

// mutate applies fn and recomputes as one step, then notifies subscribers
// outside the lock. full is false for changes that leave the filter state
// untouched (sort and page). When either step fails the filter state, sort
// and page are restored, so the state always matches the last snapshot.
func (d *Dashboard) mutate(full bool, fn func() error) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	state, sort, page := d.state.Clone(), d.sort, d.page
	err := fn()
	var snap *Snapshot
	if err == nil {
		snap, err = d.recompute(full)
	}
	if err != nil {
		d.state, d.sort, d.page = state, sort, page
		d.mu.Unlock()
		return err
	}
	subs := slices.Clone(d.subscribers)
	d.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

// filterChange wraps a state mutation that resets the grid to page one
func (d *Dashboard) filterChange(fn func(*facets.State) error) error {
	return d.mutate(true, func() error {
		if err := fn(d.state); err != nil {
			return err
		}
		d.page = 1
		return nil
	})
}

// ToggleFacet selects v when it is not selected and deselects it otherwise
func (d *Dashboard) ToggleFacet(key string, v record.Value) error {
	return d.filterChange(func(st *facets.State) error { return st.Toggle(key, v) })
}

// SelectFacet adds v to a facet's selection
func (d *Dashboard) SelectFacet(key string, v record.Value) error {
	return d.filterChange(func(st *facets.State) error { return st.Select(key, v) })
}

// DeselectFacet removes v from a facet's selection
func (d *Dashboard) DeselectFacet(key string, v record.Value) error {
	return d.filterChange(func(st *facets.State) error { return st.Deselect(key, v) })
}

// ClearFacet empties one facet's selection
func (d *Dashboard) ClearFacet(key string) error {
	return d.filterChange(func(st *facets.State) error { return st.ClearFacet(key) })
}

// ClearFilters empties every selection and search query
func (d *Dashboard) ClearFilters() error {
	return d.filterChange(func(st *facets.State) error {
		st.Clear()
		for g := range d.typed {
			delete(d.typed, g)
		}
		return nil
	})
}

// SetSearch applies a search query immediately
func (d *Dashboard) SetSearch(group, q string) error {
	return d.filterChange(func(st *facets.State) error {
		delete(d.typed, group)
		return st.SetQuery(group, q)
	})
}

// SortBy sorts the grid by field: a new field sorts ascending, the current
// field flips direction. The page is kept.
func (d *Dashboard) SortBy(field int) error {
	if !record.ValidField(field) {
		return fmt.Errorf("%w: %d", ErrUnknownField, field)
	}
	return d.mutate(false, func() error {
		d.sort = d.sort.Toggle(field)
		return nil
	})
}

// ClearSort restores dataset order
func (d *Dashboard) ClearSort() error {
	return d.mutate(false, func() error {
		d.sort = d.sort.Clear()
		return nil
	})
}

// SetPage moves the grid to page n, clamped to the available pages
func (d *Dashboard) SetPage(n int) error {
	return d.mutate(false, func() error {
		d.page = n
		return nil
	})
}

// NextPage moves one page forward when there is one
func (d *Dashboard) NextPage() error {
	return d.mutate(false, func() error {
		if d.snapshot.Page.HasNext {
			d.page++
		}
		return nil
	})
}

// PrevPage moves one page back when there is one
func (d *Dashboard) PrevPage() error {
	return d.mutate(false, func() error {
		if d.snapshot.Page.HasPrev {
			d.page--
		}
		return nil
	})
}
