package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"reporttable/internal/config"
)

const (
	ServiceName = config.AppName
	MeterName   = "reporttable"
)

// Telemetry holds the tracing and metrics providers for one process
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *prometheus.Registry
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *ConversionMetrics
	System         *SystemMetrics

	traceOut io.Closer
	logger   *slog.Logger
}

// ConversionMetrics are the instruments recorded by the conversion pipeline
type ConversionMetrics struct {
	LinesRead       metric.Int64Counter
	RowsEmitted     metric.Int64Counter
	EmptyChunks     metric.Int64Counter
	CollapsedChunks metric.Int64Counter
	Runs            metric.Int64Counter
	RunDuration     metric.Float64Histogram
}

// InitializeTelemetry sets up tracing according to cfg and a meter provider
// backed by a private Prometheus registry.
func InitializeTelemetry(ctx context.Context, cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	t := &Telemetry{logger: logger}

	if err := t.initializeTracing(cfg, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := t.initializeMetrics(res); err != nil {
		_ = t.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.Bool("metrics_file", cfg.MetricsFile != ""))

	return t, nil
}

// NewNoopTelemetry returns telemetry that records metrics in memory and drops spans
func NewNoopTelemetry() *Telemetry {
	t, err := InitializeTelemetry(context.Background(), config.TelemetryConfig{TraceExporter: "none"}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		// only reachable if instrument creation fails, which the SDK does not do for valid names
		panic(err)
	}
	return t
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) (*resource.Resource, error) {
	env := cfg.Environment
	if env == "" {
		env = "development"
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		attribute.String("deployment.environment", env),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "file":
		var f *os.File
		if err := config.EnsureParentDir(cfg.TraceFile); err != nil {
			return err
		}
		f, err = os.Create(cfg.TraceFile)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		t.traceOut = f
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(f))
	case "", "none":
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	t.TracerProvider = tp
	t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// initializeMetrics sets up an OTel meter provider exporting into a Prometheus registry
func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.Registry = registry
	t.MeterProvider = mp
	t.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))

	metrics, err := CreateConversionMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.Metrics = metrics

	system, err := NewSystemMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.System = system
	return nil
}

// CreateConversionMetrics creates the pipeline instruments on meter
func CreateConversionMetrics(meter metric.Meter) (*ConversionMetrics, error) {
	linesRead, err := meter.Int64Counter(
		"maketable_lines_read",
		metric.WithDescription("Total number of report lines read"),
	)
	if err != nil {
		return nil, err
	}

	rowsEmitted, err := meter.Int64Counter(
		"maketable_rows_emitted",
		metric.WithDescription("Total number of table rows emitted"),
	)
	if err != nil {
		return nil, err
	}

	emptyChunks, err := meter.Int64Counter(
		"maketable_empty_chunks",
		metric.WithDescription("Labels skipped because they had no values"),
	)
	if err != nil {
		return nil, err
	}

	collapsed, err := meter.Int64Counter(
		"maketable_collapsed_chunks",
		metric.WithDescription("Chunks rewritten by a collapse rule"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"maketable_runs",
		metric.WithDescription("Conversion runs by outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"maketable_run_duration",
		metric.WithDescription("Conversion run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ConversionMetrics{
		LinesRead:       linesRead,
		RowsEmitted:     rowsEmitted,
		EmptyChunks:     emptyChunks,
		CollapsedChunks: collapsed,
		Runs:            runs,
		RunDuration:     duration,
	}, nil
}

// RecordRun records the outcome of a single conversion
func (m *ConversionMetrics) RecordRun(ctx context.Context, format string, started time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("status", status),
	)
	m.Runs.Add(ctx, 1, attrs)
	m.RunDuration.Record(ctx, time.Since(started).Seconds(), attrs)
}

// StartSpan starts a span on the telemetry tracer
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span (if any) and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// WriteMetrics writes the registry to path in the Prometheus text format
func (t *Telemetry) WriteMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := config.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, t.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	t.logger.Debug("Metrics written", slog.String("path", path))
	return nil
}

// Shutdown flushes pending spans and releases exporters
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if t.traceOut != nil {
		if err := t.traceOut.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
		t.traceOut = nil
	}
	return errors.Join(errs...)
}
