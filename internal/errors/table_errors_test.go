package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingPriorLabelError(t *testing.T) {
	err := &MissingPriorLabelError{Line: 4}

	assert.Contains(t, err.Error(), "line 4")
	assert.True(t, IsParsingError(err))
	assert.False(t, IsStructureError(err))

	appErr := err.AsAppError()
	assert.Equal(t, ErrTypeParsing, appErr.Type)
	assert.Equal(t, 4, appErr.Context["line"])

	var target *MissingPriorLabelError
	require.True(t, errors.As(appErr, &target))
	assert.Equal(t, 4, target.Line)
}

func TestUnevenValuePairingError(t *testing.T) {
	err := &UnevenValuePairingError{Label: "Race", Count: 5}

	assert.Equal(t, `got an odd number of values (5) for label "Race"`, err.Error())
	assert.True(t, IsStructureError(err))
	assert.True(t, IsStructureError(fmt.Errorf("build: %w", err)))
	assert.False(t, IsParsingError(err))

	appErr := err.AsAppError()
	assert.Equal(t, ErrTypeStructure, appErr.Type)
	assert.Equal(t, "Race", appErr.Context["label"])
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewAppValidationError("bad format")))
	assert.False(t, IsValidationError(NewConfigError("bad", nil)))
	assert.False(t, IsValidationError(errors.New("plain")))
	assert.False(t, IsValidationError(nil))
}
