package query

import (
	"time"

	"github.com/rs/zerolog"
)

// stageTracker times pipeline stages and logs each as it completes
type stageTracker struct {
	logger  zerolog.Logger
	reports []StageReport
	started time.Time
	current string
}

func newStageTracker(logger zerolog.Logger, stages int) *stageTracker {
	return &stageTracker{logger: logger, reports: make([]StageReport, 0, stages)}
}

// start begins timing a stage
func (t *stageTracker) start(name string) {
	t.current = name
	t.started = time.Now()
}

// complete records the running stage
func (t *stageTracker) complete(rows int, cached bool) {
	r := StageReport{
		Name:    t.current,
		Rows:    rows,
		Cached:  cached,
		Elapsed: time.Since(t.started),
	}
	t.reports = append(t.reports, r)
	t.logger.Debug().
		Str("stage", r.Name).
		Int("rows", r.Rows).
		Bool("cached", r.Cached).
		Dur("elapsed", r.Elapsed).
		Msgf("[STAGE] %s done", r.Name)
}

func (t *stageTracker) total() time.Duration {
	var d time.Duration
	for _, r := range t.reports {
		d += r.Elapsed
	}
	return d
}
