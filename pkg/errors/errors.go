// Package errors provides structured error types for figlayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND / UNKNOWN_*: Resource not found
//   - STALE_* / EDIT_* / NOTHING_*: Undo history conditions
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLockedFigure, "figure %s is locked", id)
//	if errors.Is(err, errors.ErrCodeLockedFigure) {
//	    // Handle locked figure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry  Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFigureID  Code = "INVALID_FIGURE_ID"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeDuplicateFigure  Code = "DUPLICATE_FIGURE"
	ErrCodeLockedFigure     Code = "LOCKED_FIGURE"
	ErrCodeUnknownAlgorithm Code = "UNKNOWN_ALGORITHM"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Undo history errors
	ErrCodeStaleReference Code = "STALE_REFERENCE"
	ErrCodeEditState      Code = "EDIT_STATE"
	ErrCodeIrreversible   Code = "IRREVERSIBLE"
	ErrCodeNothingToUndo  Code = "NOTHING_TO_UNDO"
	ErrCodeNothingToRedo  Code = "NOTHING_TO_REDO"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is neither an *Error nor a *FigureError.
// The outermost coded error in the chain wins.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *FigureError:
			return e.Code
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error and *FigureError types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var fe *FigureError
	if errors.As(err, &fe) {
		return fmt.Sprintf("figure %q: %s", fe.FigureID, fe.Reason)
	}
	return err.Error()
}

// FigureError is returned when a specific figure blocks an operation.
// It carries the figure ID so invokers can highlight the offending figure.
type FigureError struct {
	Code     Code
	FigureID string
	Reason   string
}

// Error implements the error interface.
func (e *FigureError) Error() string {
	return fmt.Sprintf("%s: figure %q: %s", e.Code, e.FigureID, e.Reason)
}

// Figure creates a FigureError for the given figure.
func Figure(code Code, id, format string, args ...any) *FigureError {
	return &FigureError{Code: code, FigureID: id, Reason: fmt.Sprintf(format, args...)}
}

// FigureID extracts the offending figure ID from err, if any.
func FigureID(err error) (string, bool) {
	var fe *FigureError
	if errors.As(err, &fe) {
		return fe.FigureID, true
	}
	return "", false
}
