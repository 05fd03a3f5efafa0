package operations

import (
	"errors"
	"fmt"
)

// StageError records which stage of which job failed
type StageError struct {
	Stage string `json:"stage"`
	Job   string `json:"job,omitempty"`
	Cause error  `json:"cause,omitempty"`
}

// Error implements the error interface
func (e *StageError) Error() string {
	if e == nil {
		return "unknown stage error"
	}
	if e.Job != "" {
		return fmt.Sprintf("%s: %s: %v", e.Job, e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying error
func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// WrapError wraps an error with stage context
func WrapError(err error, stage, job string) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Job: job, Cause: err}
}

// GetStage returns the failing stage recorded in err, if any
func GetStage(err error) string {
	var sErr *StageError
	if errors.As(err, &sErr) {
		return sErr.Stage
	}
	return ""
}
