package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Converter ConverterConfig `yaml:"converter" envconfig:"CONVERTER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ConverterConfig holds the defaults applied to every conversion job
type ConverterConfig struct {
	Format      string   `yaml:"format" envconfig:"FORMAT"`
	SplitColumn int      `yaml:"split_column_number" envconfig:"SPLIT_COLUMN_NUMBER"`
	SkipLines   []int    `yaml:"skip_lines" envconfig:"SKIP_LINES"`
	Blacklist   []string `yaml:"blacklist" envconfig:"BLACKLIST"`
	Header      []string `yaml:"header" envconfig:"HEADER"`
	Clean       bool     `yaml:"clean" envconfig:"CLEAN"`
	// Indent overrides the formatter's default sub-row indent when non-empty
	Indent     string `yaml:"indent" envconfig:"INDENT"`
	BatchLimit int    `yaml:"batch_limit" envconfig:"BATCH_LIMIT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"` // "stdout", "file", "none"
	TraceFile     string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Environment   string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load builds the configuration. Precedence, lowest first:
// built-in defaults, the YAML file at path (if any), MAKETABLE_* variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no default tags, so envconfig only touches variables that are set
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// mergeFile overlays the YAML file onto cfg; keys absent from the file keep their value
func mergeFile(cfg *Config, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate validates the configuration and normalizes enum-like fields
func (c *Config) Validate() error {
	if c.Converter.SplitColumn <= 0 {
		return fmt.Errorf("split column number must be positive, got %d", c.Converter.SplitColumn)
	}

	for _, n := range c.Converter.SkipLines {
		if n < 0 {
			return fmt.Errorf("skip line index must not be negative, got %d", n)
		}
	}

	if c.Converter.BatchLimit <= 0 {
		c.Converter.BatchLimit = DefaultBatchLimit
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Logging.Level)
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	c.Logging.Output = strings.ToLower(c.Logging.Output)
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("unknown log output: %q", c.Logging.Output)
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	switch c.Telemetry.TraceExporter {
	case "", "none":
		c.Telemetry.TraceExporter = "none"
	case "stdout":
	case "file":
		if c.Telemetry.TraceFile == "" {
			return fmt.Errorf("trace exporter %q requires a trace file", c.Telemetry.TraceExporter)
		}
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Telemetry.TraceExporter)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"maketable.yaml",
		"configs/maketable.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Converter: ConverterConfig{
			Format:      DefaultFormat,
			SplitColumn: DefaultSplitColumn,
			SkipLines:   DefaultSkipLines(),
			Blacklist:   DefaultBlacklist(),
			Clean:       true,
			BatchLimit:  DefaultBatchLimit,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: DefaultTraceExporter,
			Environment:   "development",
		},
	}
}
