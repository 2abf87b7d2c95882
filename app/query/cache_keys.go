package query

import "planillas/app/cache"

// DatasetKey is the cache key prefix shared by every result over one dataset
func DatasetKey(fingerprint string) string {
	return cache.Segment("dataset", fingerprint)
}

// BuildStageCacheKey extends a prefix key with one stage
func BuildStageCacheKey(prefix string, stage PipelineStage) string {
	return cache.JoinKey(prefix, cache.Segment(stage.Name(), stage.CacheKey()))
}
