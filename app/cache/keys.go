package cache

import "strings"

// KeySeparator joins the segments of a composite cache key
const KeySeparator = "|"

// Segment renders one "name:value" key segment
func Segment(name, value string) string {
	return name + ":" + value
}

// JoinKey builds a composite key from segments
func JoinKey(segments ...string) string {
	return strings.Join(segments, KeySeparator)
}

// IsKeyPrefix reports whether prefixKey names a leading run of whole
// segments of fullKey
func IsKeyPrefix(prefixKey, fullKey string) bool {
	if !strings.HasPrefix(fullKey, prefixKey) {
		return false
	}
	rest := fullKey[len(prefixKey):]
	return rest == "" || strings.HasPrefix(rest, KeySeparator)
}
