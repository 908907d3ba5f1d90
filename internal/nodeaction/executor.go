// Package nodeaction implements the execute side of the action
// catalog: the node agent decodes internal/action's compiled
// payloads back into typed inputs and actually performs the work on
// the host, streaming output lines and a final result back over the
// ActionMessage channel instead of returning a value directly.
package nodeaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// Executor performs one action kind's work on the host. id identifies
// the action for ActionOutputLine/ActionResult correlation; out is
// the channel the node agent forwards up to the controller.
type Executor interface {
	Execute(ctx context.Context, id uuid.UUID, payload []byte, out chan<- wire.ActionMessage) error
}

// Registry maps an action kind to the Executor that runs it.
type Registry map[string]Executor

// DefaultRegistry returns the registry wired with every built-in
// action kind. "job" never reaches the agent: the compiler expands
// it into its constituent actions before the run is ever sent.
func DefaultRegistry() Registry {
	return Registry{
		"copy":    &CopyExecutor{},
		"file":    &FileExecutor{},
		"command": &CommandExecutor{},
		"git":     &GitExecutor{},
		"package": &PackageExecutor{},
	}
}

// Lookup returns the Executor for kind.
func (r Registry) Lookup(kind string) (Executor, bool) {
	e, ok := r[kind]
	return e, ok
}
