package fileloader

import "github.com/rs/zerolog"

// LoadOptions controls how a dataset payload is read
type LoadOptions struct {
	// RowsPath is an optional JSONPath selecting the rows array inside a
	// wrapped document, e.g. "$.data". Empty means the document is the array.
	RowsPath string
	// MaxShards caps the number of files LoadGlob reads (0 = unlimited)
	MaxShards int
	// Concurrency bounds parallel shard loads (0 = 4)
	Concurrency int
	Logger      zerolog.Logger
}

// DefaultLoadOptions returns options for a bare array payload
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Logger: zerolog.Nop(), Concurrency: 4}
}
