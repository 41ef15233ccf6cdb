package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewLedgerUnavailableError(cause)

	assert.Contains(t, err.Error(), "LEDGER_UNAVAILABLE")
	assert.Contains(t, err.Error(), "dial tcp: timeout")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestTypeSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("query validation failed: %w", NewValidationError("pageSize must be positive"))

	require.True(t, IsAppError(err))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))

	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
}

func TestGetAppErrorOnForeignError(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsAppError(errors.New("plain")))
}

func TestEnrichmentErrorTypes(t *testing.T) {
	assert.True(t, IsType(NewAuthorMissingError("u1"), ErrorTypeAuthorMissing))
	assert.True(t, IsType(NewAuthorUnavailableError(errors.New("throttled")), ErrorTypeAuthorUnavailable))
	assert.True(t, IsType(NewReactionUnavailableError(errors.New("throttled")), ErrorTypeReactionUnavailable))
	assert.True(t, IsNotFound(NewNotFoundError("reaction tally")))
}

func TestWithCodeAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError("assembly failed").WithCode("EMT-99").WithCause(cause)

	assert.Equal(t, "EMT-99", err.Code)
	assert.True(t, errors.Is(err, cause))
}
