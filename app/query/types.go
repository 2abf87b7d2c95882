package query

import (
	"context"
	"time"

	"planillas/app/record"
)

// SortDirection is ascending or descending
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// StageResult carries rows from one stage to the next. Rows reference
// dataset rows; the slice itself may be shared with the result cache and
// must not be reordered in place.
type StageResult struct {
	Rows []*record.Row
	// View holds the unpaged rows once a page stage has sliced Rows
	View []*record.Row
	Page *PageInfo
}

// PipelineStage represents a single stage in the query pipeline
type PipelineStage interface {
	// Execute processes the input rows and returns the stage output
	Execute(ctx context.Context, input *StageResult) (*StageResult, error)

	// CanCache returns true if this stage's results can be cached
	CanCache() bool

	// CacheKey returns a key identifying this stage's parameters
	CacheKey() string

	// Name returns the stage name for logging and cache keys
	Name() string
}

// StageReport describes how one stage ran
type StageReport struct {
	Name    string
	Rows    int
	Cached  bool
	Elapsed time.Duration
}

// QueryResult contains the final result of pipeline execution
type QueryResult struct {
	Rows   []*record.Row // final rows; the current page when paging
	View   []*record.Row // every row of the sorted, filtered view
	Page   *PageInfo
	Total  int
	Cached bool // every cacheable stage was served from cache
	Stages []StageReport
	// Outputs holds each stage's output in stage order
	Outputs []*StageResult
}
