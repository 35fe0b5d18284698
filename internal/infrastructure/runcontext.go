package infrastructure

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sportsight/internal/config"
)

// RunContext carries the per-invocation state threaded through the extractor
// and the modeler. It is constructed once per pipeline run and never retained
// across runs; there is deliberately no process-wide mutable equivalent.
type RunContext struct {
	RunID     string
	StartedAt time.Time
	Paths     *config.Paths
	Pipeline  config.PipelineConfig
	Logger    *slog.Logger
}

// NewRunContext builds a run context with a fresh run ID.
func NewRunContext(paths *config.Paths, pipeline config.PipelineConfig, logger *slog.Logger) *RunContext {
	if logger == nil {
		logger = GetLogger()
	}
	runID := uuid.New().String()
	return &RunContext{
		RunID:     runID,
		StartedAt: time.Now(),
		Paths:     paths,
		Pipeline:  pipeline,
		Logger:    logger.With(slog.String("run_id", runID)),
	}
}

// Context returns ctx with the run ID installed as trace ID, so every log
// line emitted during the run can be correlated.
func (rc *RunContext) Context(ctx context.Context) context.Context {
	return WithTraceID(ctx, rc.RunID)
}
