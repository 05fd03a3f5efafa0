package errors

import (
	stderrors "errors"
	"fmt"
)

// MissingPriorLabelError is returned when a line has an empty label and no
// earlier line supplied one to inherit.
type MissingPriorLabelError struct {
	Line int // 0-based line index
}

func (e *MissingPriorLabelError) Error() string {
	return fmt.Sprintf("line %d: empty label and no previous label to inherit", e.Line)
}

// AsAppError wraps the error in the PARSING category
func (e *MissingPriorLabelError) AsAppError() *AppError {
	return NewParsingError("cannot find previous label to use", e).WithContext("line", e.Line)
}

// UnevenValuePairingError is returned when a multi-value label holds an odd
// number of values, so sub-labels and sub-values cannot be paired.
type UnevenValuePairingError struct {
	Label string
	Count int
}

func (e *UnevenValuePairingError) Error() string {
	return fmt.Sprintf("got an odd number of values (%d) for label %q", e.Count, e.Label)
}

// AsAppError wraps the error in the STRUCTURE category
func (e *UnevenValuePairingError) AsAppError() *AppError {
	return NewStructureError("uneven value pairing", e).
		WithContext("label", e.Label).
		WithContext("count", e.Count)
}

// IsParsingError reports whether err is a parsing failure
func IsParsingError(err error) bool {
	var missing *MissingPriorLabelError
	if stderrors.As(err, &missing) {
		return true
	}
	return hasType(err, ErrTypeParsing)
}

// IsStructureError reports whether err is a structural failure
func IsStructureError(err error) bool {
	var uneven *UnevenValuePairingError
	if stderrors.As(err, &uneven) {
		return true
	}
	return hasType(err, ErrTypeStructure)
}

// IsValidationError reports whether err is a validation failure
func IsValidationError(err error) bool {
	return hasType(err, ErrTypeValidation)
}

func hasType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
