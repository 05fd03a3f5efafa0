package operations

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	apperrors "reporttable/internal/errors"
	"reporttable/pkg/contracts/domain"
)

// BatchManifest is the YAML document listing the jobs of a batch run.
//
//	defaults:
//	  format: latex_booktabs
//	jobs:
//	  - name: table1
//	    input: table one.txt
//	    output: out/table1.tex
type BatchManifest struct {
	Defaults yaml.MapSlice   `yaml:"defaults"`
	Jobs     []yaml.MapSlice `yaml:"jobs"`
}

// LoadManifest reads the manifest at path and returns its jobs.
// Each job starts from base, then the manifest defaults, then its own fields.
// Relative paths are resolved against the manifest's directory.
func LoadManifest(path string, base domain.ConversionJob) ([]domain.ConversionJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, filepath.Dir(path), base)
}

// ParseManifest decodes manifest YAML. baseDir anchors relative paths.
func ParseManifest(data []byte, baseDir string, base domain.ConversionJob) ([]domain.ConversionJob, error) {
	var manifest BatchManifest
	if err := yaml.UnmarshalStrict(data, &manifest); err != nil {
		return nil, apperrors.NewConfigError("invalid manifest", err)
	}
	if len(manifest.Jobs) == 0 {
		return nil, apperrors.NewConfigError("manifest has no jobs", nil)
	}

	if len(manifest.Defaults) > 0 {
		if err := overlay(&base, manifest.Defaults); err != nil {
			return nil, apperrors.NewConfigError("invalid manifest defaults", err)
		}
	}

	jobs := make([]domain.ConversionJob, 0, len(manifest.Jobs))
	seenOutputs := make(map[string]int, len(manifest.Jobs))
	for i, fields := range manifest.Jobs {
		job := cloneJob(base)
		if err := overlay(&job, fields); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("invalid manifest job %d", i+1), err)
		}
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}

		job.Input = anchor(baseDir, job.Input)
		job.Output = anchor(baseDir, job.Output)
		job.Prepend = anchor(baseDir, job.Prepend)
		job.Append = anchor(baseDir, job.Append)

		if prev, ok := seenOutputs[job.Output]; ok && job.Output != "" {
			return nil, apperrors.NewAppValidationError(
				fmt.Sprintf("jobs %d and %d write the same output %s", prev, i+1, job.Output))
		}
		seenOutputs[job.Output] = i + 1

		jobs = append(jobs, job)
	}
	return jobs, nil
}

// overlay decodes fields on top of job, keeping what fields does not set
func overlay(job *domain.ConversionJob, fields yaml.MapSlice) error {
	raw, err := yaml.Marshal(fields)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(raw, job)
}

func cloneJob(job domain.ConversionJob) domain.ConversionJob {
	job.SkipLines = append([]int(nil), job.SkipLines...)
	job.Header = append([]string(nil), job.Header...)
	job.Blacklist = append([]string(nil), job.Blacklist...)
	if job.Indent != nil {
		indent := *job.Indent
		job.Indent = &indent
	}
	return job
}

func anchor(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
