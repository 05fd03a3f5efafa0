package operations

import (
	"reporttable/internal/config"
	"reporttable/pkg/contracts/domain"
)

// JobFromConfig returns a job carrying the converter defaults of cfg.
// Input and output are left for the caller to fill in.
func JobFromConfig(cfg config.ConverterConfig) domain.ConversionJob {
	job := domain.ConversionJob{
		Format:      cfg.Format,
		SplitColumn: cfg.SplitColumn,
		SkipLines:   append([]int(nil), cfg.SkipLines...),
		Blacklist:   append([]string(nil), cfg.Blacklist...),
		Header:      append([]string(nil), cfg.Header...),
		Clean:       cfg.Clean,
	}
	if cfg.Indent != "" {
		indent := cfg.Indent
		job.Indent = &indent
	}
	return job
}
