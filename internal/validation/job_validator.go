package validation

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"reporttable/internal/config"
	apperrors "reporttable/internal/errors"
	"reporttable/internal/exporter"
	"reporttable/pkg/contracts/domain"
)

// JobValidator validates conversion jobs before they run
type JobValidator struct {
	validate *validator.Validate
	files    *FileValidator
	logger   *slog.Logger
}

// NewJobValidator creates a validator with the job-specific rules registered
func NewJobValidator(logger *slog.Logger) *JobValidator {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()

	// Register custom validators
	v.RegisterValidation("format", isKnownFormat)
	v.RegisterValidation("nonnegative_ints", isNonNegativeInts)

	// Use YAML tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &JobValidator{
		validate: v,
		files:    NewFileValidator(logger),
		logger:   logger.With(slog.String("component", "job_validator")),
	}
}

// ValidateJob checks the job's fields and the combination rules between them
func (v *JobValidator) ValidateJob(job *domain.ConversionJob) error {
	if job == nil {
		return apperrors.NewAppValidationError("job is required")
	}

	if err := v.validate.Struct(job); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) {
			return apperrors.NewAppValidationError(err.Error())
		}

		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, formatValidationError(fe))
		}
		v.logger.Error("Job validation failed",
			slog.String("job", job.DisplayName()),
			slog.Any("errors", messages))
		return apperrors.NewAppValidationError(strings.Join(messages, "; ")).
			WithContext("job", job.DisplayName())
	}

	formatter, err := exporter.Lookup(job.Format)
	if err != nil {
		return err
	}
	if formatter.Binary() && (job.Prepend != "" || job.Append != "") {
		return apperrors.NewAppValidationError(
			fmt.Sprintf("format %s is binary and cannot be combined with prepend or append", formatter.Name())).
			WithContext("job", job.DisplayName())
	}

	return nil
}

// ValidateFiles checks that the job's inputs are readable and its output writable
func (v *JobValidator) ValidateFiles(job *domain.ConversionJob) error {
	for _, path := range []string{job.Input, job.Prepend, job.Append} {
		if path == "" {
			continue
		}
		if err := v.files.ValidateFile(config.ResolveInputPath(path)); err != nil {
			return apperrors.NewIOError("input check failed", err).WithContext("path", path)
		}
	}
	if err := v.files.ValidateOutputPath(job.Output); err != nil {
		return apperrors.NewIOError("output check failed", err).WithContext("path", job.Output)
	}
	return nil
}

// Validate runs ValidateJob followed by ValidateFiles
func (v *JobValidator) Validate(job *domain.ConversionJob) error {
	if err := v.ValidateJob(job); err != nil {
		return err
	}
	return v.ValidateFiles(job)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must have at most %s entries", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "format":
		return fmt.Sprintf("%s %q is not one of: %s", field, err.Value(), strings.Join(exporter.Names(), ", "))
	case "nonnegative_ints":
		return fmt.Sprintf("%s must not contain negative line numbers", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// Custom validators

// isKnownFormat validates that the format has a registered formatter
func isKnownFormat(fl validator.FieldLevel) bool {
	return exporter.IsRegistered(fl.Field().String())
}

// isNonNegativeInts validates that every element of an int slice is >= 0
func isNonNegativeInts(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		if field.Index(i).Int() < 0 {
			return false
		}
	}
	return true
}
