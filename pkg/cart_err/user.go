// pkg/cart_err/user.go

package cart_err

import (
	"errors"
	"fmt"
	"io"
	"os"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var debugMode bool

// SetDebugMode makes PrintError append the error chain and any hints.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

func DebugEnabled() bool {
	return debugMode
}

// UserError marks an error as expected and recoverable by the user.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewExpectedError wraps an error for softer UX handling.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError checks if the error is marked as expected.
func IsExpectedUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// UserMessage is the one-line form of err for status lines and notices.
// Remediation steps of a classified error are left out.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Summary()
	}
	return err.Error()
}

// PrintError prints a human-readable error message without exiting.
func PrintError(userMessage string, err error) {
	FprintError(os.Stderr, userMessage, err)
}

// FprintError is PrintError writing to w.
func FprintError(w io.Writer, userMessage string, err error) {
	if err == nil {
		return
	}
	if IsExpectedUserError(err) {
		zap.L().Warn(userMessage, zap.Error(err))
		fmt.Fprintf(w, "⚠️  Notice: %s: %v\n", userMessage, err)
	} else {
		zap.L().Error(userMessage, zap.Error(err))
		fmt.Fprintf(w, "❌ Error: %s: %v\n", userMessage, err)
	}
	if !DebugEnabled() {
		return
	}
	fmt.Fprintf(w, "\nDetails:\n%+v\n", cerr.Formattable(err))
	for _, hint := range cerr.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
