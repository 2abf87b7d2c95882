package fileloader

import (
	"strings"
)

// compressionExtensions maps compression extensions to their CompressionType
var compressionExtensions = map[string]CompressionType{
	".gz":  CompressionGzip,
	".bz2": CompressionBzip2,
	".xz":  CompressionXZ,
}

// DetectCompressionFromPath determines the compression of a dataset file.
// The extension wins (data2.json.gz); files without a compression extension
// are sniffed by magic bytes since published datasets are sometimes served
// gzipped under a plain .json name.
func DetectCompressionFromPath(filePath string) (CompressionType, error) {
	lower := strings.ToLower(filePath)
	for ext, ct := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			return ct, nil
		}
	}
	return DetectCompressionByMagic(filePath)
}

// IsDatasetFile reports whether a path looks like a JSON dataset, compressed
// or not, or an exported workbook
func IsDatasetFile(filePath string) bool {
	lower := strings.ToLower(filePath)
	if strings.HasSuffix(lower, ".xlsx") {
		return true
	}
	for ext := range compressionExtensions {
		lower = strings.TrimSuffix(lower, ext)
	}
	return strings.HasSuffix(lower, ".json")
}
