package record

import (
	"errors"
	"fmt"
)

// ErrNotArray is returned when the payload (or one of its rows) is not a JSON array
var ErrNotArray = errors.New("payload is not an array")

// DataFormatError describes a payload with the wrong shape
type DataFormatError struct {
	Row    int // -1 when the error is about the payload itself
	Field  int // -1 when the error is about a whole row
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("invalid dataset: %s", e.Reason)
	case e.Field < 0:
		return fmt.Sprintf("invalid dataset: row %d: %s", e.Row, e.Reason)
	default:
		return fmt.Sprintf("invalid dataset: row %d field %d: %s", e.Row, e.Field, e.Reason)
	}
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// DataLoadError wraps every failure of the initial dataset load: I/O,
// decompression, JSON parsing and payload shape. It is fatal for the session.
type DataLoadError struct {
	Source string // file path, glob or caller supplied name
	Op     string // read, decompress, parse, select, convert, discover
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// NewLoadError is a small helper used by loaders
func NewLoadError(source, op string, err error) *DataLoadError {
	return &DataLoadError{Source: source, Op: op, Err: err}
}
