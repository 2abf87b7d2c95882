package fileloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"planillas/app/record"
)

// LoadFile reads one dataset file, decompressing it when needed. Every
// failure is returned as *record.DataLoadError.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*record.Dataset, error) {
	if path == "" {
		return nil, record.NewLoadError(path, "read", fmt.Errorf("file path is empty"))
	}
	if err := ctx.Err(); err != nil {
		return nil, record.NewLoadError(path, "read", err)
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, record.NewLoadError(path, "read", err)
	}

	compression, err := DetectCompressionFromPath(path)
	if err != nil {
		return nil, record.NewLoadError(path, "read", err)
	}

	ds, err := loadBytes(path, data, compression, opts)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info().
		Str("source", path).
		Str("compression", compression.String()).
		Int("rows", ds.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("[LOAD] dataset loaded")
	return ds, nil
}

// LoadBytes builds a dataset from an in-memory payload. Compression is
// detected from magic bytes.
func LoadBytes(source string, data []byte, opts LoadOptions) (*record.Dataset, error) {
	return loadBytes(source, data, DetectCompression(data), opts)
}

func loadBytes(source string, data []byte, compression CompressionType, opts LoadOptions) (*record.Dataset, error) {
	raw, err := Decompress(data, compression)
	if err != nil {
		return nil, record.NewLoadError(source, "decompress", err)
	}

	if IsWorkbook(raw) {
		rows, err := parseWorkbook(raw)
		if err != nil {
			return nil, record.NewLoadError(source, "parse", err)
		}
		return record.Concat(source, Fingerprint(raw), record.FromValues(source, rows)), nil
	}

	doc, err := parseJSONData(raw)
	if err != nil {
		return nil, record.NewLoadError(source, "parse", err)
	}

	payload, err := selectRows(doc, opts.RowsPath)
	if err != nil {
		return nil, record.NewLoadError(source, "select", err)
	}

	ds, err := record.NewDataset(source, payload, Fingerprint(raw))
	if err != nil {
		return nil, record.NewLoadError(source, "convert", err)
	}
	return ds, nil
}

// LoadGlob loads every shard matching pattern below root and concatenates
// them in path order. Shards load concurrently; the first failure cancels
// the rest and no partial dataset is returned.
func LoadGlob(ctx context.Context, root, pattern string, opts LoadOptions) (*record.Dataset, error) {
	source := filepath.Join(root, pattern)

	info, err := DiscoverFiles(root, pattern, opts.MaxShards)
	if err != nil {
		return nil, record.NewLoadError(source, "discover", err)
	}
	if len(info.Files) == 0 {
		return nil, record.NewLoadError(source, "discover", fmt.Errorf("no dataset files match %q", pattern))
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}

	shards := make([]*record.Dataset, len(info.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range info.Files {
		i, file := i, file
		g.Go(func() error {
			ds, err := LoadFile(gctx, file, opts)
			if err != nil {
				return err
			}
			shards[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fingerprints := make([]string, len(shards))
	for i, s := range shards {
		fingerprints[i] = s.Fingerprint()
	}

	ds := record.Concat(source, combineFingerprints(fingerprints), shards...)
	opts.Logger.Info().
		Str("source", source).
		Int("shards", len(shards)).
		Int("rows", ds.Len()).
		Int64("bytes", info.TotalSize).
		Msg("[LOAD] shards merged")
	return ds, nil
}
