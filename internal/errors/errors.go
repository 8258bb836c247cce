// Package errors provides structured error types and exit codes for deployctl.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes reported by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (failing target, tool failure, etc.)
	ExitConfigError      = 2 // Configuration error (invalid config, unknown target, cycle)
	ExitEnvironmentError = 3 // Environment error (docker not available, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindUnknownTarget
	KindCycle
	KindToolFailure
	KindLifecycle
	KindEnvironment
)

// Error is the base error type for deployctl.
type Error struct {
	Kind    ErrorKind
	Message string
	Target  string // Target name if applicable
	Command string // External command line if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	if e.Target != "" && e.Command != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Target, e.Command, msg)
	}
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s", e.Target, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation, KindUnknownTarget, KindCycle:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *Error {
	return &Error{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *Error {
	return Environment(fmt.Sprintf(format, args...))
}

// UnknownTarget creates an error for a target name that is not registered.
func UnknownTarget(name string) *Error {
	return &Error{
		Kind:    KindUnknownTarget,
		Message: fmt.Sprintf("unknown target %q", name),
	}
}

// Cycle creates an error for a circular dependency involving the named target.
func Cycle(name string) *Error {
	return &Error{
		Kind:    KindCycle,
		Message: fmt.Sprintf("circular dependency detected involving %q", name),
	}
}

// ToolFailure creates an error for an external command that exited non-zero.
func ToolFailure(command string, exitCode int, output string) *Error {
	e := &Error{
		Kind:    KindToolFailure,
		Command: command,
		Message: fmt.Sprintf("exited with code %d", exitCode),
	}
	if output != "" {
		e.Message += "\n" + output
	}
	return e
}

// Lifecycle creates an error for an unexpected service state transition.
func Lifecycle(service, message string) *Error {
	return &Error{
		Kind:    KindLifecycle,
		Message: fmt.Sprintf("service %q: %s", service, message),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// ConfigWrap wraps an error as a configuration error.
func ConfigWrap(err error, message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
		Cause:   err,
	}
}

// TargetError creates a runtime error attributed to a specific target.
func TargetError(target, message string, cause error) *Error {
	return &Error{
		Kind:    KindRuntime,
		Target:  target,
		Message: message,
		Cause:   cause,
	}
}

// kindOf extracts the ErrorKind from an error chain.
// Returns false if the chain contains no *Error.
func kindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindRuntime, false
}

// IsUnknownTarget reports whether err is an unknown-target error.
func IsUnknownTarget(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindUnknownTarget
}

// IsCycle reports whether err is a circular-dependency error.
func IsCycle(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindCycle
}

// IsToolFailure reports whether err is a non-zero exit from a wrapped CLI.
func IsToolFailure(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindToolFailure
}

// IsLifecycle reports whether err is an unexpected service state error.
func IsLifecycle(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindLifecycle
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}
