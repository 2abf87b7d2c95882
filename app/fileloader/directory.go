package fileloader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DirectoryInfo contains the dataset shards discovered under a root
type DirectoryInfo struct {
	RootPath  string   // Absolute path to directory
	Files     []string // Discovered file paths (absolute, sorted)
	TotalSize int64    // Total size in bytes
}

// DiscoverFiles finds dataset shards matching a doublestar pattern below
// dirPath ("**/*.json.gz"). Results are sorted so shard order, and therefore
// row order, is deterministic.
func DiscoverFiles(dirPath, pattern string, maxFiles int) (*DirectoryInfo, error) {
	if pattern == "" {
		return nil, fmt.Errorf("file pattern is required (e.g., *.json.gz)")
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(absPath), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("pattern matching failed: %w", err)
	}
	sort.Strings(matches)

	info := &DirectoryInfo{RootPath: absPath}
	for _, match := range matches {
		full := filepath.Join(absPath, filepath.FromSlash(match))
		if !IsDatasetFile(full) {
			continue
		}
		stat, err := os.Stat(full)
		if err != nil {
			continue // Skip files we can't stat
		}
		info.Files = append(info.Files, full)
		info.TotalSize += stat.Size()

		if maxFiles > 0 && len(info.Files) >= maxFiles {
			break
		}
	}
	return info, nil
}
