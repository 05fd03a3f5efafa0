package operations

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"reporttable/internal/exporter"
	"reporttable/internal/files"
	"reporttable/internal/infrastructure"
	"reporttable/internal/validation"
	"reporttable/pkg/contracts/domain"
)

// Manager runs conversion jobs through the stage pipeline
type Manager struct {
	stages    []Stage
	validator *validation.JobValidator
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithStages replaces the default stage list
func WithStages(stages ...Stage) Option {
	return func(m *Manager) {
		m.stages = stages
	}
}

// WithTelemetry records spans and metrics on t
func WithTelemetry(t *infrastructure.Telemetry) Option {
	return func(m *Manager) {
		m.telemetry = t
	}
}

// NewManager creates a manager with the default stages
func NewManager(logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	m := &Manager{
		validator: validation.NewJobValidator(logger),
		logger:    infrastructure.WithComponent(logger, "operations"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.stages == nil {
		m.stages = DefaultStages(files.NewManager(logger), logger)
	}
	if m.telemetry == nil {
		m.telemetry = infrastructure.NewNoopTelemetry()
	}
	return m
}

// Run validates job and executes every stage in order.
// Nothing is written unless all earlier stages succeed.
func (m *Manager) Run(ctx context.Context, job *domain.ConversionJob) (*domain.RunResult, error) {
	started := time.Now()
	ctx = infrastructure.EnsureRunID(ctx)
	if job != nil {
		ctx = infrastructure.WithJob(ctx, job.DisplayName())
	}

	ctx, span := m.telemetry.StartSpan(ctx, "conversion")
	state, err := m.run(ctx, job)
	infrastructure.EndSpan(span, err)

	format := ""
	if job != nil {
		format = job.Format
	}
	m.recordMetrics(ctx, format, state, started, err)

	if err != nil {
		infrastructure.WithError(m.logger, err).ErrorContext(ctx, "Conversion failed",
			slog.String("stage", GetStage(err)))
		return nil, err
	}

	result := state.Result()
	m.logger.InfoContext(ctx, "Conversion completed",
		slog.String("output", job.Output),
		slog.String("format", format),
		slog.Int("rows", result.Rows),
		slog.Int("bytes", result.BytesOut),
		slog.Duration("duration", time.Since(started)))
	return result, nil
}

func (m *Manager) run(ctx context.Context, job *domain.ConversionJob) (*RunState, error) {
	if err := m.validator.Validate(job); err != nil {
		return nil, err
	}

	formatter, err := exporter.Lookup(job.Format)
	if err != nil {
		return nil, err
	}

	state := NewRunState(infrastructure.GetRunID(ctx), job, formatter)
	for _, stage := range m.stages {
		state.InitStage(stage.ID())
	}

	m.logger.InfoContext(ctx, "sequential_execution_start",
		slog.String("input", job.Input),
		slog.String("format", formatter.Name()),
		slog.Int("stage_count", len(m.stages)))

	for i, stage := range m.stages {
		if err := ctx.Err(); err != nil {
			m.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("stage", stage.ID()))
			return state, WrapError(err, stage.ID(), job.DisplayName())
		}

		m.logger.DebugContext(ctx, "executing_stage",
			slog.String("stage", stage.ID()),
			slog.Int("stage_number", i+1),
			slog.Int("total_stages", len(m.stages)))

		if err := m.executeStage(ctx, state, stage); err != nil {
			return state, WrapError(err, stage.ID(), job.DisplayName())
		}
	}
	return state, nil
}

func (m *Manager) executeStage(ctx context.Context, state *RunState, stage Stage) error {
	stageState := state.GetStage(stage.ID())

	ctx, span := m.telemetry.StartSpan(ctx, stage.ID(),
		attribute.String("stage.id", stage.ID()),
		attribute.String("run.id", state.RunID))

	stageState.Start()
	err := stage.Execute(ctx, state)
	infrastructure.EndSpan(span, err)

	if err != nil {
		stageState.Fail(err)
		m.logger.ErrorContext(ctx, "stage_execution_failed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", stageState.Duration()),
			slog.String("error", err.Error()))
		return err
	}

	stageState.Complete()
	m.logger.DebugContext(ctx, "stage_completed_successfully",
		slog.String("stage", stage.ID()),
		slog.Duration("duration", stageState.Duration()))
	return nil
}

func (m *Manager) recordMetrics(ctx context.Context, format string, state *RunState, started time.Time, err error) {
	metrics := m.telemetry.Metrics
	if metrics == nil {
		return
	}
	if state != nil {
		attrs := metric.WithAttributes(attribute.String("format", format))
		metrics.LinesRead.Add(ctx, int64(state.ParseStats.LinesRead), attrs)
		metrics.RowsEmitted.Add(ctx, int64(state.BuildStats.Rows), attrs)
		metrics.EmptyChunks.Add(ctx, int64(state.BuildStats.EmptyChunks), attrs)
		metrics.CollapsedChunks.Add(ctx, int64(state.BuildStats.Collapsed), attrs)
	}
	metrics.RecordRun(ctx, format, started, err)
}
