package operations

import (
	"reporttable/internal/dataprocessing"
	"reporttable/internal/exporter"
	"reporttable/pkg/contracts/domain"
)

// RunState carries one job through the pipeline stages
type RunState struct {
	RunID     string
	Job       *domain.ConversionJob
	Formatter exporter.Formatter
	Indent    string

	// read
	Report   []byte
	Prepend  []byte
	Appendix []byte

	// parse
	Data       *domain.GroupedData
	ParseStats dataprocessing.ParseStats

	// build
	Table      *domain.Table
	BuildStats dataprocessing.BuildStats

	// render / write
	Body     []byte
	BytesOut int

	stages map[string]*StageState
	order  []string
}

// NewRunState creates the state for job. The indent comes from the job when
// set, otherwise from the formatter.
func NewRunState(runID string, job *domain.ConversionJob, formatter exporter.Formatter) *RunState {
	indent := formatter.DefaultIndent()
	if job.Indent != nil {
		indent = *job.Indent
	}
	return &RunState{
		RunID:     runID,
		Job:       job,
		Formatter: formatter,
		Indent:    indent,
		stages:    make(map[string]*StageState),
	}
}

// InitStage registers a pending state for stage id
func (s *RunState) InitStage(id string) *StageState {
	st := NewStageState(id)
	s.stages[id] = st
	s.order = append(s.order, id)
	return st
}

// GetStage returns the state of stage id, or nil if it was never started
func (s *RunState) GetStage(id string) *StageState {
	return s.stages[id]
}

// StageIDs returns the registered stage ids in execution order
func (s *RunState) StageIDs() []string {
	return append([]string(nil), s.order...)
}

// Result summarizes the run
func (s *RunState) Result() *domain.RunResult {
	return &domain.RunResult{
		Job:         s.Job.DisplayName(),
		LinesRead:   s.ParseStats.LinesRead,
		Labels:      s.ParseStats.Labels,
		Rows:        s.BuildStats.Rows,
		EmptyChunks: s.BuildStats.EmptyChunks,
		Collapsed:   s.BuildStats.Collapsed,
		BytesOut:    s.BytesOut,
	}
}
