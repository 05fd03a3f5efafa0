// Package config provides configuration management for maketable.
// It loads defaults, an optional YAML file and environment variables,
// and exposes a type-safe Config used by the CLI and the conversion pipeline.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML, maketable.yaml or configs/maketable.yaml)
//	3. Default values (lowest priority)
//
// Command-line flags are applied by the caller on top of the loaded Config.
//
// # Environment Variables
//
// All environment variables follow the pattern MAKETABLE_* for namespacing:
//
//	MAKETABLE_CONVERTER_FORMAT=latex_booktabs
//	MAKETABLE_CONVERTER_SPLIT_COLUMN_NUMBER=70
//	MAKETABLE_CONVERTER_SKIP_LINES=0,1,132
//	MAKETABLE_LOGGING_LEVEL=debug
//	MAKETABLE_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/maketable.prom
//
// # Paths
//
// ResolveInputPath applies the lookup rule used for input, prepend and append
// files: a relative path that does not exist as given is joined with the
// current working directory.
package config
