package errors

import (
	"fmt"
	"strings"
)

// ErrorType categorizes an error for CLI display.
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "Configuration"
	ErrorTypeStorage       ErrorType = "Storage"
	ErrorTypeCollector     ErrorType = "Collector"
	ErrorTypeValidation    ErrorType = "Validation"
)

// KulutError is a user-facing error carrying actionable guidance, printed
// by the CLI layer.
type KulutError struct {
	Type      ErrorType
	Message   string
	Cause     string
	Solutions []string
	Verify    string
}

// Error implements the error interface.
func (e *KulutError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\nError: %s\n", e.Message))
	if e.Cause != "" {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", e.Cause))
	}
	if len(e.Solutions) > 0 {
		sb.WriteString("\nSolutions:\n")
		for _, s := range e.Solutions {
			sb.WriteString(fmt.Sprintf("  %s\n", s))
		}
	}
	if e.Verify != "" {
		sb.WriteString(fmt.Sprintf("\nVerify: %s\n", e.Verify))
	}
	return sb.String()
}

// New creates a KulutError.
func New(errType ErrorType, message string) *KulutError {
	return &KulutError{Type: errType, Message: message}
}

// WithCause attaches the underlying cause.
func (e *KulutError) WithCause(cause string) *KulutError {
	e.Cause = cause
	return e
}

// WithSolutions attaches suggested fixes.
func (e *KulutError) WithSolutions(solutions ...string) *KulutError {
	e.Solutions = solutions
	return e
}

// WithVerify attaches a verification command.
func (e *KulutError) WithVerify(verify string) *KulutError {
	e.Verify = verify
	return e
}
