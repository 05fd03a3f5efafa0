package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"reporttable/internal/config"
	apperrors "reporttable/internal/errors"
	"reporttable/internal/exporter"
	"reporttable/internal/infrastructure"
	"reporttable/internal/operations"
	"reporttable/pkg/contracts"
	"reporttable/pkg/contracts/domain"
)

// options holds the parsed command line
type options struct {
	input, output     string
	format            string
	prepend, appendix string
	splitColumn       int
	skipLines         intList
	header            stringList
	blacklist         stringList
	noClean           bool
	indent            string
	configPath        string
	jobsPath          string
	logLevel          string
	metricsFile       string
	traceFile         string
	listFormats       bool
	version           bool

	// explicitly set flags, so unset ones fall back to the configuration
	set map[string]bool
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.input, "input", "", "fixed-width report to convert (required unless --jobs is given)")
	fs.StringVar(&opts.output, "output", "", "file to write the table to (required unless --jobs is given)")
	fs.StringVar(&opts.format, "format", config.DefaultFormat, "output format, see --list_formats")
	fs.StringVar(&opts.prepend, "prepend", "", "file whose content is written before the table")
	fs.StringVar(&opts.appendix, "append", "", "file whose content is written after the table")
	fs.IntVar(&opts.splitColumn, "split_column_number", config.DefaultSplitColumn, "character offset where the value column starts")
	fs.Var(&opts.skipLines, "skip_lines", "comma-separated 0-based line numbers to ignore (repeatable, default 0,132)")
	fs.Var(&opts.header, "header", "header cell, once per column (repeatable)")
	fs.Var(&opts.blacklist, "blacklist", "label to drop from the table (repeatable, an empty value clears the default)")
	fs.BoolVar(&opts.noClean, "no_clean", false, "keep underscores in labels and spaces after '(' in values")
	fs.StringVar(&opts.indent, "indent", "", "prefix for grouped sub-rows (default depends on the format)")
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.jobsPath, "jobs", "", "YAML manifest of conversion jobs to run as a batch")
	fs.StringVar(&opts.logLevel, "log_level", "", "log level: debug, info, warn, error")
	fs.StringVar(&opts.metricsFile, "metrics_file", "", "write run metrics to this file in Prometheus text format")
	fs.StringVar(&opts.traceFile, "trace_file", "", "write trace spans to this file")
	fs.BoolVar(&opts.listFormats, "list_formats", false, "print the available output formats and exit")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	return fs
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, apperrors.NewAppValidationError("unexpected arguments: " + strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// applyConfig overrides configuration values with explicitly set flags
func (o *options) applyConfig(cfg *config.Config) error {
	if o.set["log_level"] {
		cfg.Logging.Level = o.logLevel
	}
	if o.set["metrics_file"] {
		cfg.Telemetry.MetricsFile = o.metricsFile
	}
	if o.set["trace_file"] {
		cfg.Telemetry.TraceFile = o.traceFile
		cfg.Telemetry.TraceExporter = "file"
	}
	return cfg.Validate()
}

// applyJob overrides job defaults with explicitly set flags
func (o *options) applyJob(job *domain.ConversionJob) {
	if o.set["format"] {
		job.Format = o.format
	}
	if o.set["split_column_number"] {
		job.SplitColumn = o.splitColumn
	}
	if o.set["skip_lines"] {
		job.SkipLines = o.skipLines.values
	}
	if o.set["header"] {
		job.Header = o.header.values
	}
	if o.set["blacklist"] {
		job.Blacklist = o.blacklist.values
	}
	if o.set["no_clean"] {
		job.Clean = !o.noClean
	}
	if o.set["indent"] {
		indent := o.indent
		job.Indent = &indent
	}
	if o.set["prepend"] {
		job.Prepend = o.prepend
	}
	if o.set["append"] {
		job.Append = o.appendix
	}
	job.Input = o.input
	job.Output = o.output
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	started := time.Now()
	opts, err := parseArgs(args, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}
	if opts.listFormats {
		for _, name := range exporter.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}
	if err := opts.applyConfig(cfg); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureRunID(ctx)

	telemetry, err := infrastructure.InitializeTelemetry(ctx, cfg.Telemetry, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize telemetry", slog.String("error", err.Error()))
		return 1
	}

	err = execute(ctx, opts, cfg, logger, telemetry)

	if telemetry.System != nil {
		telemetry.System.Collect(ctx, started)
	}

	if werr := telemetry.WriteMetrics(cfg.Telemetry.MetricsFile); werr != nil {
		logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", werr.Error()))
	}
	if serr := telemetry.Shutdown(context.Background()); serr != nil {
		logger.WarnContext(ctx, "Failed to shut down telemetry", slog.String("error", serr.Error()))
	}

	if err != nil {
		logger.ErrorContext(ctx, "maketable failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts *options, cfg *config.Config, logger *slog.Logger, telemetry *infrastructure.Telemetry) error {
	manager := operations.NewManager(logger, operations.WithTelemetry(telemetry))

	base := operations.JobFromConfig(cfg.Converter)
	opts.applyJob(&base)

	if opts.jobsPath != "" {
		if opts.input != "" || opts.output != "" {
			return apperrors.NewAppValidationError("--jobs cannot be combined with --input or --output")
		}
		base.Input, base.Output = "", ""

		jobs, err := operations.LoadManifest(opts.jobsPath, base)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "Starting batch conversion",
			slog.String("manifest", opts.jobsPath),
			slog.Int("jobs", len(jobs)))

		_, err = manager.RunBatch(ctx, jobs, cfg.Converter.BatchLimit)
		return err
	}

	if opts.input == "" || opts.output == "" {
		return apperrors.NewAppValidationError("--input and --output are required")
	}

	logger.InfoContext(ctx, "Starting conversion",
		slog.String("input", base.Input),
		slog.String("output", base.Output),
		slog.String("format", base.Format))

	_, err := manager.Run(ctx, &base)
	return err
}
