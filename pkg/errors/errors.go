// Package errors implements the error taxonomy used across the
// loader, compiler, transport, and execution layers: each class
// carries enough context to render a useful diagnostic without the
// caller needing to inspect the call stack.
package errors

import (
	"fmt"

	"github.com/tiron-sh/tiron/internal/origin"
)

// ConfigError reports a parse, schema, or resolution failure while
// loading a runbook. It always carries an origin and, where one is
// available, a span into that origin's source text.
type ConfigError struct {
	Origin  *origin.Origin
	Span    *origin.Span
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError anchored at span (nil for
// whole-file failures such as an unreadable path).
func NewConfigError(o *origin.Origin, span *origin.Span, message string, err error) error {
	return &ConfigError{Origin: o, Span: span, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Origin != nil {
		return e.Origin.Render(e.Message, e.Span)
	}
	return fmt.Sprintf("Error: %s", e.Message)
}

// Unwrap exposes the underlying error, if any.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CompileError reports a per-action compilation failure: a type
// mismatch, a missing required parameter, or an unreadable copy
// source. Like ConfigError it carries origin+span so the diagnostic
// points at the exact attribute.
type CompileError struct {
	Origin     *origin.Origin
	Span       *origin.Span
	ActionName string
	Message    string
	Err        error
}

// NewCompileError constructs a CompileError for the named action kind.
func NewCompileError(o *origin.Origin, span *origin.Span, actionName, message string, err error) error {
	return &CompileError{Origin: o, Span: span, ActionName: actionName, Message: message, Err: err}
}

func (e *CompileError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.ActionName != "" {
		msg = fmt.Sprintf("%s: %s", e.ActionName, e.Message)
	}
	if e.Origin != nil {
		return e.Origin.Render(msg, e.Span)
	}
	return fmt.Sprintf("Error: %s", msg)
}

// Unwrap exposes the underlying error, if any.
func (e *CompileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError reports an agent spawn, SSH connection, or version
// probe failure for one host. It never aborts the run; the engine
// isolates it to the failing host and continues with the rest.
type TransportError struct {
	Host   string
	Reason string
	Err    error
}

// NewTransportError constructs a TransportError for host.
func NewTransportError(host, reason string, err error) error {
	return &TransportError{Host: host, Reason: reason, Err: err}
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transport error [%s]: %s", e.Host, e.Reason)
}

// Unwrap exposes the underlying error, if any.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError reports a runtime action failure reported by the
// node agent for one host. It carries the action id so callers can
// correlate it with the ActionStarted/ActionResult stream.
type ExecutionError struct {
	Host     string
	ActionID string
	Message  string
	Err      error
}

// NewExecutionError constructs an ExecutionError for host/actionID.
func NewExecutionError(host, actionID, message string, err error) error {
	return &ExecutionError{Host: host, ActionID: actionID, Message: message, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.ActionID != "" {
		return fmt.Sprintf("execution error [%s/%s]: %s", e.Host, e.ActionID, e.Message)
	}
	return fmt.Sprintf("execution error [%s]: %s", e.Host, e.Message)
}

// Unwrap exposes the underlying error, if any.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
