package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/tracker"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Storage or I/O failure
	ExitCommandError = 2 // Bad usage or rejected input
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify turns service errors into exit errors: rejected input is a
// command error, anything else is a failure.
func classify(action string, err error) error {
	if err == nil {
		return nil
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) || errors.Is(err, tracker.ErrCategoryInUse) || errors.Is(err, tracker.ErrNotFound) {
		return WrapExitError(ExitCommandError, action, err)
	}
	return WrapExitError(ExitFailure, action, err)
}

// writeJSON is the --format json path shared by the listing commands.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
