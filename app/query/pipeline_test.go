package query

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planillas/app/cache"
	"planillas/app/record"
)

func payRows(pays ...float64) []*record.Row {
	values := make([]record.Value, len(pays))
	for i, p := range pays {
		values[i] = record.Number(p)
	}
	return rowsWith(record.FieldGrossPay, values...)
}

func above(limit float64) func(*record.Row) bool {
	return func(r *record.Row) bool {
		pay, ok := r.Pay()
		return ok && pay > limit
	}
}

func TestPipelineFilterSortPage(t *testing.T) {
	rows := payRows(5, 50, 20, 1, 40, 30)
	p := NewQueryPipeline(context.Background(), "fp", nil, zerolog.Nop()).
		AddStage(NewFilterStage("gt10", above(10))).
		AddStage(NewSortStage(SortState{Field: record.FieldGrossPay, Direction: Descending})).
		AddStage(NewPageStage(2, 2))

	res, err := p.Execute(rows)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 5, 2}, indexes(res.View))
	assert.Equal(t, []int{5, 2}, indexes(res.Rows))
	assert.Equal(t, 4, res.Total)
	require.NotNil(t, res.Page)
	assert.Equal(t, 2, res.Page.Page)
	assert.False(t, res.Cached)
	require.Len(t, res.Stages, 3)
	assert.Equal(t, "page", res.Stages[2].Name)
	require.Len(t, res.Outputs, 3)
	assert.Equal(t, []int{1, 2, 4, 5}, indexes(res.Outputs[0].Rows), "filter output keeps input order")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, indexes(rows), "input untouched")
}

func TestPipelineReusesCachedStages(t *testing.T) {
	rows := payRows(5, 50, 20, 1, 40, 30)
	c := cache.New[*StageResult](16, zerolog.Nop())
	calls := 0
	counting := func(r *record.Row) bool { calls++; return above(10)(r) }

	run := func(sort SortState, page int) *QueryResult {
		p := NewQueryPipeline(context.Background(), "fp", c, zerolog.Nop()).
			AddStage(NewFilterStage("gt10", counting)).
			AddStage(NewSortStage(sort)).
			AddStage(NewPageStage(page, 2))
		res, err := p.Execute(rows)
		require.NoError(t, err)
		return res
	}

	asc := SortState{Field: record.FieldGrossPay, Direction: Ascending}
	first := run(asc, 1)
	assert.Equal(t, len(rows), calls)

	second := run(asc, 2)
	assert.Equal(t, len(rows), calls, "filter served from cache")
	assert.True(t, second.Stages[0].Cached)
	assert.True(t, second.Stages[1].Cached)
	assert.Equal(t, indexes(first.View), indexes(second.View))
	assert.Equal(t, []int{4, 1}, indexes(second.Rows))

	desc := run(asc.Toggle(record.FieldGrossPay), 1)
	assert.Equal(t, len(rows), calls)
	assert.Equal(t, []int{1, 4, 5, 2}, indexes(desc.View))
	assert.Equal(t, []int{2, 5, 4, 1}, indexes(first.View), "sorting never reorders a cached slice")

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.InvalidatePrefix(DatasetKey("fp")))
}

func TestPipelineCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewQueryPipeline(ctx, "fp", nil, zerolog.Nop()).AddStage(NewFilterStage("all", nil))
	_, err := p.Execute(payRows(1, 2))
	assert.ErrorIs(t, err, context.Canceled)
}

type failingStage struct{}

func (failingStage) Execute(context.Context, *StageResult) (*StageResult, error) {
	return nil, errors.New("boom")
}
func (failingStage) CanCache() bool   { return false }
func (failingStage) CacheKey() string { return "" }
func (failingStage) Name() string     { return "fail" }

func TestPipelineWrapsStageErrors(t *testing.T) {
	p := NewQueryPipeline(context.Background(), "fp", nil, zerolog.Nop()).AddStage(failingStage{})
	_, err := p.Execute(payRows(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage fail failed")
}

func TestStageCacheKeys(t *testing.T) {
	key := BuildStageCacheKey(DatasetKey("abc"), NewFilterStage("anio=2020", nil))
	key = BuildStageCacheKey(key, NewSortStage(SortState{Field: record.FieldYear, Direction: Descending}))
	assert.Equal(t, "dataset:abc|filter:anio=2020|sort:2:desc", key)
	assert.Equal(t, "dataset:abc|sort:none", BuildStageCacheKey(DatasetKey("abc"), NewSortStage(NewSortState())))

	// fields outside the named layout still get distinct keys
	a := NewSortStage(SortState{Field: 14, Direction: Ascending}).CacheKey()
	b := NewSortStage(SortState{Field: 15, Direction: Ascending}).CacheKey()
	assert.NotEqual(t, a, b)
}
