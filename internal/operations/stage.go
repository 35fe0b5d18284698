package operations

import (
	"context"
	"sync"
	"time"

	"sportsight/internal/infrastructure"
)

// Stage represents a single step in the refresh pipeline.
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// Run executes the stage with the given run context
	Run(ctx context.Context, rc *infrastructure.RunContext) error
}

// StageStatus represents the current status of a stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
)

// StageState represents the runtime state of a stage
type StageState struct {
	mu        sync.RWMutex
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    StageStatus `json:"status"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Error     error       `json:"error,omitempty"`
}

// NewStageState creates a new stage state with default values
func NewStageState(id, name string) *StageState {
	return &StageState{
		ID:     id,
		Name:   name,
		Status: StageStatusPending,
	}
}

// Start marks the stage as active and sets the start time
func (s *StageState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.StartTime = &now
	s.Status = StageStatusActive
}

// Complete marks the stage as completed and sets the end time
func (s *StageState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusCompleted
}

// Fail marks the stage as failed with the given error
func (s *StageState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusFailed
	s.Error = err
}

// Duration returns the duration of the stage execution
func (s *StageState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}
