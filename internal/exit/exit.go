package exit

import (
	"fmt"
	"io"
)

// Exit codes.
const (
	CodeSuccess = 0
	CodeFailure = 1
	CodeUsage   = 2
)

// Result holds the message and exit code for program termination.
type Result struct {
	ExitCode int
	Message  string
	// Stderr routes the message to the error stream.
	Stderr bool
}

// Print writes the message to stdout or stderr.
func (r *Result) Print(stdout, stderr io.Writer) {
	if r.Stderr {
		fmt.Fprint(stderr, r.Message)
		return
	}
	fmt.Fprint(stdout, r.Message)
}

// Success creates a result printed to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{ExitCode: CodeSuccess, Message: message}
}

// Error creates a result printed to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{ExitCode: CodeFailure, Message: message, Stderr: true}
}

// Errorf creates an error result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Usagef creates a result for invalid invocations, exit code 2.
func Usagef(format string, a ...any) *Result {
	return &Result{ExitCode: CodeUsage, Message: fmt.Sprintf(format, a...), Stderr: true}
}
