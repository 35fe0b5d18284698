package operations

import (
	"context"
	"fmt"
	"log/slog"

	"sportsight/internal/infrastructure"
)

// Runner executes stages sequentially. A stage failure stops the pipeline:
// later stages depend on the artifacts of earlier ones.
type Runner struct {
	stages []Stage
	states []*StageState
	logger *slog.Logger
}

// NewRunner creates a runner over the given stages.
func NewRunner(logger *slog.Logger, stages ...Stage) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	states := make([]*StageState, len(stages))
	for i, stage := range stages {
		states[i] = NewStageState(stage.ID(), stage.Name())
	}
	return &Runner{stages: stages, states: states, logger: logger}
}

// Run executes every stage in order against one run context.
func (r *Runner) Run(ctx context.Context, rc *infrastructure.RunContext) error {
	for i, stage := range r.stages {
		state := r.states[i]
		state.Start()

		r.logger.Info("stage started",
			slog.String("stage", stage.ID()),
			slog.String("name", stage.Name()))

		if err := stage.Run(ctx, rc); err != nil {
			state.Fail(err)
			r.logger.Error("stage failed",
				slog.String("stage", stage.ID()),
				slog.String("error", err.Error()),
				slog.Duration("duration", state.Duration()))
			return fmt.Errorf("stage %s failed: %w", stage.ID(), err)
		}

		state.Complete()
		r.logger.Info("stage completed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", state.Duration()))
	}
	return nil
}

// States returns the runtime state of every stage, in execution order.
func (r *Runner) States() []*StageState {
	return r.states
}
