package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "reporttable/internal/errors"
	"reporttable/pkg/contracts/domain"
)

func validJob() *domain.ConversionJob {
	return &domain.ConversionJob{
		Input:       "table one.txt",
		Output:      "table1.tex",
		Format:      "latex_longtable",
		SplitColumn: 63,
		SkipLines:   []int{0, 132},
		Clean:       true,
	}
}

func TestJobValidator_ValidateJob(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(j *domain.ConversionJob)
		errorContains string
	}{
		{name: "valid", mutate: func(j *domain.ConversionJob) {}},
		{name: "valid with header", mutate: func(j *domain.ConversionJob) { j.Header = []string{"a", "b"} }},
		{name: "valid text format with wrap", mutate: func(j *domain.ConversionJob) {
			j.Format = "github"
			j.Prepend = "intro.md"
		}},
		{
			name:          "missing input",
			mutate:        func(j *domain.ConversionJob) { j.Input = "" },
			errorContains: "input is required",
		},
		{
			name:          "missing output",
			mutate:        func(j *domain.ConversionJob) { j.Output = "" },
			errorContains: "output is required",
		},
		{
			name:          "unknown format",
			mutate:        func(j *domain.ConversionJob) { j.Format = "html" },
			errorContains: `format "html" is not one of`,
		},
		{
			name:          "zero split column",
			mutate:        func(j *domain.ConversionJob) { j.SplitColumn = 0 },
			errorContains: "split_column_number must be greater than 0",
		},
		{
			name:          "negative skip line",
			mutate:        func(j *domain.ConversionJob) { j.SkipLines = []int{0, -1} },
			errorContains: "skip_lines must not contain negative line numbers",
		},
		{
			name:          "too many header cells",
			mutate:        func(j *domain.ConversionJob) { j.Header = []string{"a", "b", "c"} },
			errorContains: "header must have at most 2 entries",
		},
		{
			name: "binary format with prepend",
			mutate: func(j *domain.ConversionJob) {
				j.Format = "xlsx"
				j.Prepend = "preamble.tex"
			},
			errorContains: "format xlsx is binary",
		},
	}

	v := NewJobValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			tt.mutate(job)

			err := v.ValidateJob(job)
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err), "got %T", err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestJobValidator_ValidateJobNil(t *testing.T) {
	err := NewJobValidator(nil).ValidateJob(nil)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestJobValidator_ValidateFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(input, []byte("Age"), 0644))

	v := NewJobValidator(nil)

	job := validJob()
	job.Input = input
	job.Output = filepath.Join(dir, "out", "table.tex")
	require.NoError(t, v.Validate(job))

	job.Append = filepath.Join(dir, "missing.tex")
	err := v.Validate(job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.tex")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeIO, appErr.Type)

	job.Append = ""
	job.Output = dir
	err = v.Validate(job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
