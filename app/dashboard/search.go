package dashboard

import (
	"errors"

	"planillas/app/facets"
)

// TypeSearch records a keystroke in a search box. The query is applied
// once the box has been quiet for the debounce period; a newer keystroke
// replaces the pending query and restarts the timer.
func (d *Dashboard) TypeSearch(group, q string) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	fire, ok := d.debouncers[group]
	if !ok {
		d.mu.Unlock()
		return &facets.UnknownSearchError{Key: group}
	}
	if d.cfg.debounce <= 0 {
		d.mu.Unlock()
		return d.SetSearch(group, q)
	}
	d.typed[group] = q
	d.mu.Unlock()

	fire(func() { d.applyTyped(group) })
	return nil
}

// applyTyped runs on the debounce timer
func (d *Dashboard) applyTyped(group string) {
	err := d.filterChange(func(st *facets.State) error {
		q, ok := d.typed[group]
		if !ok {
			return errSuperseded
		}
		delete(d.typed, group)
		return st.SetQuery(group, q)
	})
	switch {
	case err == nil:
		d.logger.Debug().Str("group", group).Msg("[DEBOUNCE] search applied")
	case errors.Is(err, errSuperseded), errors.Is(err, ErrClosed):
	default:
		d.logger.Error().Err(err).Str("group", group).Msg("[DEBOUNCE] search failed")
	}
}

// errSuperseded means an immediate search or a clear already consumed the
// pending query
var errSuperseded = errors.New("typed search superseded")
