package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Timeout", ErrorTypeTimeout, "timeout"},
		{"IncoherentMarkers", ErrorTypeIncoherentMarkers, "incoherent_markers"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name:     "Error without cause",
			appError: &AppError{Type: ErrorTypeValidation, Message: "day 2015-06-24 has no marker to save"},
			expected: "validation: day 2015-06-24 has no marker to save",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeDatabase,
				Message: "save day",
				Cause:   errors.New("disk full"),
			},
			expected: "database: save day (caused by: disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appError := &AppError{Type: ErrorTypeDatabase, Cause: cause}

	assert.Same(t, cause, appError.Unwrap())
	assert.ErrorIs(t, appError, cause)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		target   error
		expected bool
	}{
		{"Same type and code", NewNotFoundError("day", "2015-06-24"), ErrNotFound, true},
		{"Incoherent sentinel", NewIncoherentMarkersError("2015-06-24", nil), ErrIncoherentMarkers, true},
		{"Empty day sentinel", NewEmptyDayError("2015-06-24"), ErrEmptyDay, true},
		{"Same type, different code", NewValidationError("bad", nil), ErrEmptyDay, false},
		{"Different type", NewDatabaseError("get day", nil), ErrNotFound, false},
		{"Regular error", NewNotFoundError("day", "x"), errors.New("regular error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Is(tt.target))
		})
	}
}

func TestAppError_Context(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}

	result := appError.WithContext("marker", "evening")
	assert.Same(t, appError, result)

	value, ok := appError.GetContext("marker")
	assert.True(t, ok)
	assert.Equal(t, "evening", value)

	_, ok = appError.GetContext("day")
	assert.False(t, ok)

	appError.Context = nil
	_, ok = appError.GetContext("marker")
	assert.False(t, ok)
}
