// Package errors provides a lightweight structured error type (MarkdownError)
// for category-based classification in the CLI and HTTP adapters.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a conversion error for classification
type ErrorCategory string

const (
	// Input that the grammar rejects
	CategoryParse   ErrorCategory = "parse"
	CategoryNesting ErrorCategory = "nesting"

	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Reading sources and writing output
	CategoryIO ErrorCategory = "io"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// MarkdownError is a structured error with category, severity and context
type MarkdownError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for MarkdownError
type ContextFields map[string]any

func (e *MarkdownError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

func (e *MarkdownError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *MarkdownError) WithContext(key string, value any) *MarkdownError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new MarkdownError
func New(category ErrorCategory, severity ErrorSeverity, message string) *MarkdownError {
	return &MarkdownError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new MarkdownError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *MarkdownError {
	return &MarkdownError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first MarkdownError in err's chain.
func As(err error) (*MarkdownError, bool) {
	var me *MarkdownError
	if stdErrors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if me, ok := As(err); ok {
		return me.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a MarkdownError
func GetCategory(err error) ErrorCategory {
	if me, ok := As(err); ok {
		return me.Category
	}
	return CategoryInternal
}
