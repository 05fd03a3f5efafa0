package config

// Application constants
const (
	AppName    = "maketable"
	AppVersion = "1.2.0"

	// EnvPrefix namespaces every environment variable, e.g. MAKETABLE_LOGGING_LEVEL
	EnvPrefix = "MAKETABLE"

	// Converter defaults
	DefaultFormat      = "latex_longtable"
	DefaultSplitColumn = 63
	DefaultBatchLimit  = 4

	// DefaultBlacklistLabel is a noisy identifier row emitted by the summary tool
	DefaultBlacklistLabel = "data_partner_id (mean (SD))"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/maketable.log"

	// Telemetry defaults
	DefaultTraceExporter = "none"
)

// DefaultSkipLines returns the 0-based line indices skipped unless overridden.
// Line 0 is the report title and line 132 the page break of the summary tool.
func DefaultSkipLines() []int {
	return []int{0, 132}
}

// DefaultBlacklist returns the labels excluded unless overridden
func DefaultBlacklist() []string {
	return []string{DefaultBlacklistLabel}
}
