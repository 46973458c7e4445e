// pkg/cart_err/classification.go
//
// Error classification with exit codes for the ecocart CLI.

package cart_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - Seed, config or flag validation failures (exit 2)
	CategoryValidation
	// CategoryLookup - A referenced item or alternative does not exist (exit 1)
	CategoryLookup
	// CategoryConflict - Operation already in progress for the same item (exit 1)
	CategoryConflict
	// CategoryUser - User cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - Bugs in ecocart itself (exit 3)
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryLookup:
		return "lookup"
	case CategoryConflict:
		return "conflict"
	case CategoryUser:
		return "user"
	case CategoryInternal:
		return "internal"
	default:
		return "system"
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Summary())

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

// Summary is the message and cause on one line, without remediation.
func (e *ClassifiedError) Summary() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// GetExitCode extracts exit code from any error.
// Returns 0 for nil and for expected user errors, the category code for
// classified errors, 1 for everything else.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	if IsExpectedUserError(err) {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	return 1
}

// CategoryOf reports the category of err, or CategorySystem when unclassified.
func CategoryOf(err error) ErrorCategory {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category
	}
	return CategorySystem
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewLookupError creates an error for references that resolve to nothing.
func NewLookupError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryLookup,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewConflictError creates an error for requests that collide with work in progress.
func NewConflictError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryConflict,
		Message:  message,
		Cause:    cause,
	}
}

// NewInternalError creates an error for ecocart bugs
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in ecocart",
			"Re-run with --debug and include the log file when reporting it",
		},
	}
}

// NewUserCancelledError creates an error for an interrupted operation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category: CategoryUser,
		Message:  fmt.Sprintf("%s cancelled", operation),
	}
}
