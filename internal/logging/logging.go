// Package logging provides the component-scoped leveled logger used across
// the controller and the node agent.
package logging

import (
	"io"
	"os"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level     string // debug|info|warn|error, defaults to info
	Writer    io.Writer
	Component string
	JSON      bool
}

// Logger is a component-scoped wrapper around charmbracelet/log.
type Logger struct {
	base *cblog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := cblog.Options{
		ReportTimestamp: true,
		Level:           parseLevel(opts.Level),
	}
	if opts.Component != "" {
		handlerOpts.Prefix = opts.Component
	}
	if opts.JSON {
		handlerOpts.Formatter = cblog.JSONFormatter
	}

	return &Logger{base: cblog.NewWithOptions(w, handlerOpts)}, nil
}

func parseLevel(level string) cblog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return cblog.DebugLevel
	case "warn", "warning":
		return cblog.WarnLevel
	case "error":
		return cblog.ErrorLevel
	default:
		return cblog.InfoLevel
	}
}

// With returns a derived logger carrying the supplied fields, sorted by key
// for deterministic output.
func (l *Logger) With(fields map[string]any) *Logger {
	if l == nil || l.base == nil || len(fields) == 0 {
		return l
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return &Logger{base: l.base.With(args...)}
}

// Component returns a derived logger scoped to the given component name.
func (l *Logger) Component(name string) *Logger {
	return l.With(map[string]any{"component": name})
}

func (l *Logger) Debug(msg string, fields ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Warn(msg, fields...)
}

func (l *Logger) Error(err error, msg string, fields ...any) {
	if l == nil || l.base == nil {
		return
	}
	if err != nil {
		fields = append(fields, "error", err)
	}
	l.base.Error(msg, fields...)
}
