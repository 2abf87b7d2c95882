package record

import (
	"fmt"
	"time"
)

// Row is one positional payroll record
type Row struct {
	Index  int     // 0-based position in the dataset, the row's identity
	Values []Value // Positional fields, at most FieldCount long
}

// Get returns the field at idx, or Absent when the row is shorter
func (r *Row) Get(idx int) Value {
	if r == nil || idx < 0 || idx >= len(r.Values) {
		return Absent
	}
	return r.Values[idx]
}

// Pay returns the gross exit pay and whether it is numeric
func (r *Row) Pay() (float64, bool) {
	return r.Get(FieldGrossPay).Float()
}

// Dataset is the immutable, ordered set of loaded rows
type Dataset struct {
	source      string
	fingerprint string
	loadedAt    time.Time
	rows        []*Row
}

// NewDataset converts a decoded JSON payload into a Dataset. The payload
// must be an array of arrays of scalars.
func NewDataset(source string, payload any, fingerprint string) (*Dataset, error) {
	raw, ok := payload.([]any)
	if !ok {
		return nil, &DataFormatError{Row: -1, Field: -1, Reason: fmt.Sprintf("expected array, got %T", payload), Err: ErrNotArray}
	}

	rows := make([]*Row, 0, len(raw))
	for i, item := range raw {
		fields, ok := item.([]any)
		if !ok {
			return nil, &DataFormatError{Row: i, Field: -1, Reason: fmt.Sprintf("expected array, got %T", item), Err: ErrNotArray}
		}
		width := len(fields)
		if width > FieldCount {
			width = FieldCount
		}
		values := make([]Value, width)
		for j := 0; j < width; j++ {
			v, ok := FromAny(fields[j])
			if !ok {
				return nil, &DataFormatError{Row: i, Field: j, Reason: fmt.Sprintf("unsupported value of type %T", fields[j])}
			}
			values[j] = v
		}
		rows = append(rows, &Row{Index: i, Values: values})
	}

	return &Dataset{
		source:      source,
		fingerprint: fingerprint,
		loadedAt:    time.Now(),
		rows:        rows,
	}, nil
}

// FromValues builds a dataset from already typed rows
func FromValues(source string, rows [][]Value) *Dataset {
	out := make([]*Row, len(rows))
	for i, values := range rows {
		if len(values) > FieldCount {
			values = values[:FieldCount]
		}
		out[i] = &Row{Index: i, Values: values}
	}
	return &Dataset{source: source, fingerprint: source, loadedAt: time.Now(), rows: out}
}

// Concat joins several datasets in order, reindexing rows. The inputs are
// left untouched.
func Concat(source, fingerprint string, parts ...*Dataset) *Dataset {
	total := 0
	for _, p := range parts {
		total += p.Len()
	}
	rows := make([]*Row, 0, total)
	for _, p := range parts {
		for _, r := range p.rows {
			rows = append(rows, &Row{Index: len(rows), Values: r.Values})
		}
	}
	return &Dataset{source: source, fingerprint: fingerprint, loadedAt: time.Now(), rows: rows}
}

// Rows returns the rows in load order. Callers must not modify the slice.
func (d *Dataset) Rows() []*Row { return d.rows }

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Row returns the row at position i, or nil when out of range
func (d *Dataset) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// Source returns where the data came from
func (d *Dataset) Source() string { return d.source }

// Fingerprint identifies the payload content; it prefixes cache keys
func (d *Dataset) Fingerprint() string { return d.fingerprint }

// LoadedAt returns when the dataset was built
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }
