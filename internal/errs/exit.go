package errs

import "errors"

// Process exit codes returned by cmd/journeyc.
const (
	ExitSuccess      = 0 // everything compiled, validated, and (if run) passed
	ExitTestFailure  = 1 // validation issues, blocked primitives, or a failed run
	ExitCommandError = 2 // bad arguments, unreadable paths, broken config
)

// ExitError pairs an error with the process exit code it should produce.
// Only the outermost CLI command layer inspects this; every other package
// returns plain errors or *CodedError.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with no wrapped cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code and message.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode extracts the process exit code implied by err, defaulting to
// ExitTestFailure for any error that isn't an *ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitTestFailure
}
