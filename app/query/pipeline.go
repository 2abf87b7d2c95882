package query

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"planillas/app/cache"
	"planillas/app/record"
)

// ResultCache holds stage outputs across pipeline runs
type ResultCache = cache.Cache[*StageResult]

// QueryPipeline runs stages in order over a dataset, reusing cached stage
// outputs whose key prefix matches
type QueryPipeline struct {
	ctx         context.Context
	fingerprint string
	stages      []PipelineStage
	cache       *ResultCache
	logger      zerolog.Logger
}

// NewQueryPipeline creates a pipeline. c may be nil to disable caching.
func NewQueryPipeline(ctx context.Context, fingerprint string, c *ResultCache, logger zerolog.Logger) *QueryPipeline {
	return &QueryPipeline{
		ctx:         ctx,
		fingerprint: fingerprint,
		cache:       c,
		logger:      logger,
	}
}

// AddStage appends a stage
func (p *QueryPipeline) AddStage(stage PipelineStage) *QueryPipeline {
	p.stages = append(p.stages, stage)
	return p
}

// Execute runs every stage over rows. Stage outputs are cached under the
// key of the stages that produced them; caching stops at the first stage
// that cannot be cached since everything after it depends on its output.
func (p *QueryPipeline) Execute(rows []*record.Row) (*QueryResult, error) {
	current := &StageResult{Rows: rows}
	tracker := newStageTracker(p.logger, len(p.stages))
	prefix := DatasetKey(p.fingerprint)
	cacheable := p.cache != nil
	allCached := cacheable
	outputs := make([]*StageResult, 0, len(p.stages))

	for _, stage := range p.stages {
		select {
		case <-p.ctx.Done():
			return nil, p.ctx.Err()
		default:
		}

		tracker.start(stage.Name())
		cacheable = cacheable && stage.CanCache()
		var key string
		if cacheable {
			key = BuildStageCacheKey(prefix, stage)
			prefix = key
			if hit, ok := p.cache.Get(key); ok {
				current = hit
				outputs = append(outputs, hit)
				tracker.complete(len(hit.Rows), true)
				continue
			}
			allCached = false
		}

		next, err := stage.Execute(p.ctx, current)
		if err != nil {
			return nil, fmt.Errorf("stage %s failed: %w", stage.Name(), err)
		}
		if cacheable {
			p.cache.Put(key, next)
		}
		current = next
		outputs = append(outputs, next)
		tracker.complete(len(next.Rows), false)
	}

	result := &QueryResult{
		Rows:    current.Rows,
		View:    current.View,
		Page:    current.Page,
		Cached:  allCached,
		Stages:  tracker.reports,
		Outputs: outputs,
	}
	if result.View == nil {
		result.View = current.Rows
	}
	result.Total = len(result.View)

	p.logger.Debug().
		Int("rows", result.Total).
		Bool("cached", result.Cached).
		Dur("elapsed", tracker.total()).
		Msg("[PIPELINE] executed")
	return result, nil
}
