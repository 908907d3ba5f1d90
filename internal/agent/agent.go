// Package agent implements the node side of the protocol: a
// single-threaded loop over the inbound NodeMessage stream that runs
// one action at a time, in declaration order, and stops executing
// anything else the moment one fails.
package agent

import (
	"context"

	"github.com/tiron-sh/tiron/internal/nodeaction"
	"github.com/tiron-sh/tiron/internal/wire"
)

// Agent runs actions dispatched from the registry and reports their
// outcome. Actions execute in the order they arrive until one fails;
// the agent then reports NodeShutdown(false) and stops at once,
// without reading any later Action or Shutdown message.
type Agent struct {
	Registry nodeaction.Registry
	hadError bool
}

// New returns an Agent dispatching to reg.
func New(reg nodeaction.Registry) *Agent {
	return &Agent{Registry: reg}
}

// Run drives the state machine against in, writing every lifecycle
// message to out, and returns once Shutdown has been handled, an
// action has failed, or in has closed. It matches transport.AgentFunc's signature so it can
// be handed directly to transport.NewLocal, or driven over stdio by
// cmd/tiron-node.
func (a *Agent) Run(in <-chan wire.NodeMessage, out chan<- wire.ActionMessage) {
	defer close(out)

	ctx := context.Background()
	absorbing := false

	for msg := range in {
		switch msg.Kind {
		case wire.NodeMessageAction:
			if absorbing {
				continue
			}
			if !a.runAction(ctx, msg.Action, out) {
				absorbing = true
				out <- wire.NodeShutdownMsg(false)
				return
			}
		case wire.NodeMessageShutdown:
			out <- wire.NodeShutdownMsg(!a.hadError)
			return
		}
	}
}

// runAction executes one action and reports ActionStarted/Result. It
// returns false the moment the action fails, signalling the caller
// to enter ErrorAbsorbing and shut the node down.
func (a *Agent) runAction(ctx context.Context, act *wire.ActionData, out chan<- wire.ActionMessage) bool {
	out <- wire.Started(act.ID)

	executor, ok := a.Registry.Lookup(act.Kind)
	if !ok {
		a.hadError = true
		out <- wire.Result(act.ID, false)
		return false
	}

	if err := executor.Execute(ctx, act.ID, act.Payload, out); err != nil {
		a.hadError = true
		out <- wire.OutputLine(act.ID, err.Error(), wire.LevelError)
		out <- wire.Result(act.ID, false)
		return false
	}

	out <- wire.Result(act.ID, true)
	return true
}
