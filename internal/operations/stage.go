package operations

import (
	"context"
	"sync"
	"time"
)

// Stage IDs in execution order
const (
	StageRead   = "read"
	StageParse  = "parse"
	StageBuild  = "build"
	StageRender = "render"
	StageWrite  = "write"
)

// Stage is one step of a conversion run
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Execute runs the stage, reading and updating the run state
	Execute(ctx context.Context, state *RunState) error
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
	mu        sync.RWMutex `json:"-"`
	ID        string       `json:"id"`
	Status    StageStatus  `json:"status"`
	StartTime *time.Time   `json:"start_time,omitempty"`
	EndTime   *time.Time   `json:"end_time,omitempty"`
	Error     error        `json:"error,omitempty"`
}

// NewStageState creates a new stage state in the pending status
func NewStageState(id string) *StageState {
	return &StageState{
		ID:     id,
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

// GetStatus returns the current status
func (s *StageState) GetStatus() StageStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// Duration returns how long the stage ran, or zero if it has not finished
func (s *StageState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StartTime == nil || s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(*s.StartTime)
}
