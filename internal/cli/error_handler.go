package cli

import (
	stderrors "errors"
	"fmt"

	"timelog/internal/errors"
	"timelog/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, &userError{message: eh.message(err), cause: err})
}

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsIncoherentMarkersError checks if an error reports markers out of order
func (eh *ErrorHandler) IsIncoherentMarkersError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeIncoherentMarkers)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// Process exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitIncoherent   = 3
	ExitNotFound     = 4
	ExitStorage      = 5
)

// ExitCode maps err to the status the tl process exits with.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case eh.IsIncoherentMarkersError(err):
		return ExitIncoherent
	case eh.IsValidationError(err), errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return ExitInvalidInput
	case eh.IsNotFoundError(err):
		return ExitNotFound
	case eh.IsDatabaseError(err), errors.IsErrorType(err, errors.ErrorTypeTimeout):
		return ExitStorage
	default:
		return ExitFailure
	}
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// userError shows the friendly message while keeping the original error
// reachable through errors.Is and errors.As.
type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string {
	return e.message
}

func (e *userError) Unwrap() error {
	return e.cause
}
