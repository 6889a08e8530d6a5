package cmd

import (
	"errors"
	"fmt"
	"io"

	pberror "github.com/msto63/pibench/foundation/core/error"
)

// Exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1 // the benchmark or a command failed while running
	ExitUsage   = 2 // bad arguments or configuration, nothing was run
)

const (
	usageLine   = "Usage: pibench [digits] [repsPerThread] [threads]"
	exampleLine = "Example: pibench 5000 1000 8"
	invalidLine = "Invalid arguments. All inputs must be positive integers."
)

// usageError reports a command line that could not be accepted
type usageError struct {
	lines []string
	cause error
}

func (e *usageError) Error() string {
	if e.cause != nil {
		return e.lines[0] + ": " + e.cause.Error()
	}
	return e.lines[0]
}

func (e *usageError) Unwrap() error {
	return e.cause
}

var errUsage = &usageError{lines: []string{usageLine, exampleLine}}

func invalidArgs(cause error) error {
	return &usageError{lines: []string{invalidLine}, cause: cause}
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	if pberror.HasCode(err, pberror.CodeConfigError) {
		return ExitUsage
	}
	return ExitFailure
}

func printError(w io.Writer, err error) {
	var ue *usageError
	if errors.As(err, &ue) {
		for _, line := range ue.lines {
			fmt.Fprintln(w, line)
		}
		if ue.cause != nil {
			fmt.Fprintf(w, "  %v\n", ue.cause)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
