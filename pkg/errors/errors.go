// Package errors provides the structured error type used by the compact
// layout engine and its command-line and HTTP surfaces.
//
// Every failure path in the engine returns an [*Error] carrying a
// machine-readable [Code], a human-readable message and, where the caller can
// act on it, a suggestion describing a compact-compliant fix.
//
// # Error Codes
//
//   - INVALID_CONFIG: a layout configuration violates a compact bound
//   - INVALID_CONTENT_BLOCK: a content unit has an empty id/content or unknown type
//   - COLUMN_OVERFLOW: content cannot be placed even after splitting (strict policy)
//   - INVALID_INPUT, INVALID_FORMAT, FILE_NOT_FOUND, INTERNAL_ERROR: I/O surfaces
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "font size %.2f out of range", size).
//	    Suggest("use a compact font size between 10pt and 11pt (e.g. 10)")
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    fmt.Println(errors.SuggestionOf(err))
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout engine errors
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeInvalidContentBlock Code = "INVALID_CONTENT_BLOCK"
	ErrCodeColumnOverflow      Code = "COLUMN_OVERFLOW"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code, an optional remediation hint and
// an optional cause.
type Error struct {
	Code        Code   `json:"code"`                   // Machine-readable error code
	Message     string `json:"message"`                // Human-readable message
	Suggestion  string `json:"suggestion,omitempty"`   // How to fix it
	ContentType string `json:"content_type,omitempty"` // Offending content type, if any
	Cause       error  `json:"-"`                      // Underlying error (optional)
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

// Suggest sets the suggestion and returns e for chaining.
func (e *Error) Suggest(format string, args ...any) *Error {
	e.Suggestion = fmt.Sprintf(format, args...)
	return e
}

// ForContent records the content type the error refers to.
func (e *Error) ForContent(contentType string) *Error {
	e.ContentType = contentType
	return e
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
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// As is errors.As re-exported so callers need only this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// SuggestionOf returns the suggestion attached to err, or "".
func SuggestionOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Suggestion
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
