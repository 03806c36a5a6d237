// Package errors provides structured error types for the report generator.
// Errors include context, causes, and actionable suggestions.
package errors

import (
	"fmt"
	"strings"
)

// Category classifies errors for consistent handling and display.
type Category string

const (
	CategoryConfig   Category = "config"   // Configuration loading/parsing errors
	CategorySession  Category = "session"  // Session data shape/lookup errors
	CategoryChart    Category = "chart"    // Chart rendering/extraction errors
	CategoryLayout   Category = "layout"   // Document layout/pagination errors
	CategoryStorage  Category = "storage"  // Session store read/write errors
	CategoryServer   Category = "server"   // HTTP/WebSocket server errors
	CategoryInternal Category = "internal" // Internal/unexpected errors
)

// ReportError is a structured error with context and suggestions.
// It implements the error interface and supports error wrapping.
type ReportError struct {
	// Code is a unique identifier for this error type (e.g., "SESSION_NOT_FOUND")
	Code string

	// Category classifies this error for consistent handling
	Category Category

	// Message is the primary error message describing what went wrong
	Message string

	// Context provides additional key-value details about the error
	Context map[string]string

	// Cause is the underlying error that triggered this error (for wrapping)
	Cause error

	// Suggestions are actionable remediation steps for the user
	Suggestions []string
}

// Error implements the error interface.
// Returns a simple string representation for compatibility with standard error handling.
func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
// This enables errors.Is() and errors.As() to work with ReportError.
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// Is reports whether e matches target for errors.Is() checks.
// Two ReportErrors match if they have the same Code.
func (e *ReportError) Is(target error) bool {
	if t, ok := target.(*ReportError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new ReportError with the given code, category, and message.
func New(code string, category Category, message string) *ReportError {
	return &ReportError{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// WithContext adds a context key-value pair and returns the error for chaining.
func (e *ReportError) WithContext(key, value string) *ReportError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps an underlying error and returns the error for chaining.
func (e *ReportError) WithCause(cause error) *ReportError {
	e.Cause = cause
	return e
}

// WithSuggestion adds a remediation suggestion and returns the error for chaining.
func (e *ReportError) WithSuggestion(suggestion string) *ReportError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple remediation suggestions.
func (e *ReportError) WithSuggestions(suggestions ...string) *ReportError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// HasContext returns true if the error has context information.
func (e *ReportError) HasContext() bool {
	return len(e.Context) > 0
}

// HasSuggestions returns true if the error has suggestions.
func (e *ReportError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// ContextString returns a formatted string of all context entries.
func (e *ReportError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	var parts []string
	for k, v := range e.Context {
		parts = append(parts, fmt.Sprintf("%s=%q", k, v))
	}
	return strings.Join(parts, ", ")
}

// Wrap wraps an existing error with a ReportError.
// This is a convenience function for common error wrapping patterns.
func Wrap(err error, code string, category Category, message string) *ReportError {
	return New(code, category, message).WithCause(err)
}

// AsReportError attempts to convert an error to a ReportError.
// Returns the ReportError and true if successful, nil and false otherwise.
func AsReportError(err error) (*ReportError, bool) {
	if err == nil {
		return nil, false
	}
	if re, ok := err.(*ReportError); ok {
		return re, true
	}
	return nil, false
}

// IsCategory checks if an error is a ReportError with the given category.
func IsCategory(err error, category Category) bool {
	if re, ok := AsReportError(err); ok {
		return re.Category == category
	}
	return false
}

// IsCode checks if an error is a ReportError with the given code.
func IsCode(err error, code string) bool {
	if re, ok := AsReportError(err); ok {
		return re.Code == code
	}
	return false
}

// -----------------------------------------------------------------------------
// Helper Constructors for Common Error Types
// -----------------------------------------------------------------------------

// NewConfigError creates a new configuration error.
// Use for config file parsing, missing files, or invalid configuration values.
func NewConfigError(code, message string) *ReportError {
	return New(code, CategoryConfig, message)
}

// NewConfigErrorf creates a new configuration error with formatted message.
func NewConfigErrorf(code, format string, args ...interface{}) *ReportError {
	return New(code, CategoryConfig, fmt.Sprintf(format, args...))
}

// NewSessionError creates a new session data error.
// Use for malformed session payloads or missing session records.
func NewSessionError(code, message string) *ReportError {
	return New(code, CategorySession, message)
}

// NewSessionErrorf creates a new session error with formatted message.
func NewSessionErrorf(code, format string, args ...interface{}) *ReportError {
	return New(code, CategorySession, fmt.Sprintf(format, args...))
}

// NewChartError creates a new chart rendering/extraction error.
// Use for missing chart sources, failed rasterization, or encode failures.
func NewChartError(code, message string) *ReportError {
	return New(code, CategoryChart, message)
}

// NewChartErrorf creates a new chart error with formatted message.
func NewChartErrorf(code, format string, args ...interface{}) *ReportError {
	return New(code, CategoryChart, fmt.Sprintf(format, args...))
}

// NewLayoutError creates a new document layout error.
// Use for pagination failures or invalid layout parameters.
func NewLayoutError(code, message string) *ReportError {
	return New(code, CategoryLayout, message)
}

// NewLayoutErrorf creates a new layout error with formatted message.
func NewLayoutErrorf(code, format string, args ...interface{}) *ReportError {
	return New(code, CategoryLayout, fmt.Sprintf(format, args...))
}

// NewStorageError creates a new session store error.
// Use for store read/write failures or corrupted session files.
func NewStorageError(code, message string) *ReportError {
	return New(code, CategoryStorage, message)
}

// NewStorageErrorf creates a new storage error with formatted message.
func NewStorageErrorf(code, format string, args ...interface{}) *ReportError {
	return New(code, CategoryStorage, fmt.Sprintf(format, args...))
}

// NewServerError creates a new HTTP/WebSocket server error.
func NewServerError(code, message string) *ReportError {
	return New(code, CategoryServer, message)
}

// NewServerErrorf creates a new server error with formatted message.
func NewServerErrorf(code, format string, args ...interface{}) *ReportError {
	return New(code, CategoryServer, fmt.Sprintf(format, args...))
}

// NewInternalError creates a new internal/unexpected error.
// Use for programming errors, invariant violations, or recovered panics.
func NewInternalError(code, message string) *ReportError {
	return New(code, CategoryInternal, message)
}

// NewInternalErrorf creates a new internal error with formatted message.
func NewInternalErrorf(code, format string, args ...interface{}) *ReportError {
	return New(code, CategoryInternal, fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------
// Wrapping Helpers for Common Error Types
// -----------------------------------------------------------------------------

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, code, message string) *ReportError {
	return Wrap(err, code, CategoryConfig, message)
}

// WrapSession wraps an error as a session error.
func WrapSession(err error, code, message string) *ReportError {
	return Wrap(err, code, CategorySession, message)
}

// WrapChart wraps an error as a chart error.
func WrapChart(err error, code, message string) *ReportError {
	return Wrap(err, code, CategoryChart, message)
}

// WrapLayout wraps an error as a layout error.
func WrapLayout(err error, code, message string) *ReportError {
	return Wrap(err, code, CategoryLayout, message)
}

// WrapStorage wraps an error as a storage error.
func WrapStorage(err error, code, message string) *ReportError {
	return Wrap(err, code, CategoryStorage, message)
}

// WrapServer wraps an error as a server error.
func WrapServer(err error, code, message string) *ReportError {
	return Wrap(err, code, CategoryServer, message)
}

// WrapInternal wraps an error as an internal error.
func WrapInternal(err error, code, message string) *ReportError {
	return Wrap(err, code, CategoryInternal, message)
}
