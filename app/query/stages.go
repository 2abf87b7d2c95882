package query

import (
	"context"
	"fmt"

	"planillas/app/record"
)

// cancelCheckInterval is how many rows a stage scans between context checks
const cancelCheckInterval = 1000

// FilterStage keeps the rows accepted by a matcher, in input order
type FilterStage struct {
	key   string
	match func(*record.Row) bool
}

// NewFilterStage creates a filter stage. key must identify the matcher's
// constraints; two matchers with the same key must accept the same rows.
// A nil matcher accepts every row.
func NewFilterStage(key string, match func(*record.Row) bool) *FilterStage {
	return &FilterStage{key: key, match: match}
}

// Execute scans the input rows once
func (s *FilterStage) Execute(ctx context.Context, input *StageResult) (*StageResult, error) {
	if s.match == nil {
		return &StageResult{Rows: input.Rows}, nil
	}
	out := make([]*record.Row, 0, len(input.Rows))
	for i, row := range input.Rows {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if s.match(row) {
			out = append(out, row)
		}
	}
	return &StageResult{Rows: out}, nil
}

func (s *FilterStage) CanCache() bool   { return true }
func (s *FilterStage) CacheKey() string { return s.key }
func (s *FilterStage) Name() string     { return "filter" }

// SortStage orders rows by one field
type SortStage struct {
	state SortState
}

// NewSortStage creates a sort stage; an inactive state passes rows through
func NewSortStage(state SortState) *SortStage {
	return &SortStage{state: state}
}

// Execute sorts a copy of the input so cached upstream rows keep their order
func (s *SortStage) Execute(ctx context.Context, input *StageResult) (*StageResult, error) {
	if !s.state.Active() {
		return &StageResult{Rows: input.Rows}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &StageResult{Rows: SortRows(input.Rows, s.state.Field, s.state.Direction)}, nil
}

func (s *SortStage) CanCache() bool { return true }

func (s *SortStage) CacheKey() string {
	if !s.state.Active() {
		return "none"
	}
	return fmt.Sprintf("%d:%s", s.state.Field, s.state.Direction)
}

func (s *SortStage) Name() string { return "sort" }

// PageStage slices one page out of the view
type PageStage struct {
	page int
	size int
}

// NewPageStage creates a page stage; size <= 0 uses DefaultPageSize
func NewPageStage(page, size int) *PageStage {
	return &PageStage{page: page, size: size}
}

// Execute computes the page bounds and returns the page rows
func (s *PageStage) Execute(ctx context.Context, input *StageResult) (*StageResult, error) {
	info := Paginate(len(input.Rows), s.page, s.size)
	return &StageResult{
		Rows: input.Rows[info.Start:info.End],
		View: input.Rows,
		Page: &info,
	}, nil
}

// CanCache is false: slicing is cheaper than a cache lookup
func (s *PageStage) CanCache() bool   { return false }
func (s *PageStage) CacheKey() string { return fmt.Sprintf("%d:%d", s.page, s.size) }
func (s *PageStage) Name() string     { return "page" }
