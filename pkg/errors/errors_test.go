package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tiron-sh/tiron/internal/origin"
)

func TestConfigErrorRendersSpan(t *testing.T) {
	t.Parallel()

	o := origin.New("/tmp", "site.tr", "group \"web\" {\n  host bad-host\n}\n")
	span := &origin.Span{Start: 16, End: 24}
	underlying := fmt.Errorf("unexpected token")
	err := NewConfigError(o, span, "unknown host reference", underlying)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "site.tr:2:3")
	require.Contains(t, err.Error(), "unknown host reference")
}

func TestConfigErrorWithoutSpan(t *testing.T) {
	t.Parallel()

	o := origin.New("/tmp", "missing.tr", "")
	err := NewConfigError(o, nil, "file not found", nil)

	require.Equal(t, "Error: file not found", err.Error())
}

func TestCompileErrorIncludesActionName(t *testing.T) {
	t.Parallel()

	o := origin.New("/tmp", "site.tr", "run \"main\" {\n  command bad\n}\n")
	span := &origin.Span{Start: 15, End: 22}
	err := NewCompileError(o, span, "command", "cmd type should be string", nil)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Equal(t, "command", compileErr.ActionName)
	require.Contains(t, err.Error(), "command: cmd type should be string")
}

func TestTransportErrorIsolatesHost(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("connection refused")
	err := NewTransportError("web-01", "ssh dial failed", underlying)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, "web-01", transportErr.Host)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "web-01")
}

func TestExecutionErrorIncludesActionID(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("exit status 1")
	err := NewExecutionError("web-01", "a1b2", "command failed", underlying)

	var executionErr *ExecutionError
	require.ErrorAs(t, err, &executionErr)
	require.Equal(t, "web-01", executionErr.Host)
	require.Equal(t, "a1b2", executionErr.ActionID)
	require.True(t, stdErrors.Is(err, underlying))
}
