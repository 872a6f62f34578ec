package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyDayError(t *testing.T) {
	err := NewEmptyDayError("2015-06-24")

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "EMPTY_DAY", err.Code)
	assert.Equal(t, "day 2015-06-24 has no marker to save", err.Message)
	day, ok := err.GetContext("day")
	assert.True(t, ok)
	assert.Equal(t, "2015-06-24", day)
}

func TestNewIncoherentMarkersError(t *testing.T) {
	cause := errors.New("value of marker lunch_start is sooner than the value of marker morning")
	err := NewIncoherentMarkersError("2015-06-24", cause)

	assert.Equal(t, ErrorTypeIncoherentMarkers, err.Type)
	assert.Equal(t, "INCOHERENT_MARKERS", err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t,
		"markers of 2015-06-24 are not in chronological order: value of marker lunch_start is sooner than the value of marker morning",
		GetUserMessage(err))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("day", "2015-06-24")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "day not found: 2015-06-24", err.Message)
	assert.Equal(t, "NOT_FOUND", err.Code)

	resource, _ := err.GetContext("resource")
	identifier, _ := err.GetContext("identifier")
	assert.Equal(t, "day", resource)
	assert.Equal(t, "2015-06-24", identifier)
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewDatabaseError("save day", cause)

	assert.Equal(t, ErrorTypeDatabase, err.Type)
	assert.Equal(t, "database operation failed: save day", err.Message)
	assert.Equal(t, "DATABASE_ERROR", err.Code)
	assert.Same(t, cause, err.Cause)
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("marker", "noon", "unknown marker")

	assert.Equal(t, ErrorTypeInvalidInput, err.Type)
	assert.Equal(t, "invalid input for marker: unknown marker", err.Message)
	assert.Equal(t, "INVALID_INPUT", err.Code)

	value, _ := err.GetContext("value")
	assert.Equal(t, "noon", value)
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("list days", "30s")

	assert.Equal(t, ErrorTypeTimeout, err.Type)
	assert.Equal(t, "operation timed out: list days", err.Message)
	assert.Equal(t, "TIMEOUT", err.Code)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(cause, ErrorTypeDatabase, "open store")

	assert.Equal(t, "database", err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("loading week: %w", NewNotFoundError("day", "2015-06-22"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsErrorType(t *testing.T) {
	assert.True(t, IsErrorType(NewEmptyDayError("2015-06-24"), ErrorTypeValidation))
	assert.False(t, IsErrorType(NewEmptyDayError("2015-06-24"), ErrorTypeDatabase))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeValidation))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", NewValidationError("bad marker time", nil), "bad marker time"},
		{"not found", NewNotFoundError("day", "2015-06-24"), "day not found: 2015-06-24"},
		{"incoherent without cause", NewIncoherentMarkersError("2015-06-24", nil), "markers of 2015-06-24 are not in chronological order"},
		{"database", NewDatabaseError("save day", errors.New("locked")), "A database error occurred. Please try again."},
		{"timeout", NewTimeoutError("save day", "30s"), "The operation timed out. Please try again."},
		{"unknown type", &AppError{Type: ErrorType(42)}, "An unexpected error occurred. Please try again."},
		{"plain", errors.New("plain failure"), "plain failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "EMPTY_DAY", GetErrorCode(NewEmptyDayError("2015-06-24")))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewEmptyDayError("2015-06-24")))
	assert.False(t, ShouldLogError(NewIncoherentMarkersError("2015-06-24", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("day", "x")))
	assert.True(t, ShouldLogError(NewDatabaseError("save day", nil)))
	assert.True(t, ShouldLogError(NewTimeoutError("save day", "1s")))
	assert.True(t, ShouldLogError(errors.New("plain")))
}
