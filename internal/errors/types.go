// Package errors defines the structured errors shared by the worklog
// services, the business API and the command line.
package errors

import (
	"fmt"
)

// ErrorType is the category of an AppError. It decides the message shown
// to the user and whether the error is logged.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeIncoherentMarkers
)

var errorTypeNames = [...]string{
	ErrorTypeValidation:        "validation",
	ErrorTypeNotFound:          "not_found",
	ErrorTypeDatabase:          "database",
	ErrorTypeInvalidInput:      "invalid_input",
	ErrorTypeTimeout:           "timeout",
	ErrorTypeIncoherentMarkers: "incoherent_markers",
}

func (et ErrorType) String() string {
	if et < 0 || int(et) >= len(errorTypeNames) {
		return "unknown"
	}
	return errorTypeNames[et]
}

// AppError is the error returned across package boundaries. Code is a
// stable identifier usable by scripts; Context carries the day, marker or
// operation the error is about.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so the
// package sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records key on the error and returns it for chaining.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

// GetContext returns the value recorded under key.
func (e *AppError) GetContext(key string) (any, bool) {
	value, ok := e.Context[key]
	return value, ok
}
