// Package transport wires a run's per-host worker to its node agent,
// over stdio framed with internal/wire (SSH) or in-process channels
// with no serialisation at all (Local). Both deliver the same typed
// channel pair, so internal/engine never has to know which one it got.
package transport

import "github.com/tiron-sh/tiron/internal/wire"

// Session is a live connection to one host's node agent.
type Session struct {
	// Outbound carries NodeMessages to the agent. The caller closes it
	// (or sends wire.NodeMessage{Kind: wire.NodeMessageShutdown}) to end
	// the session; Close additionally releases transport resources.
	Outbound chan<- wire.NodeMessage
	// Inbound carries ActionMessages from the agent. It closes when the
	// agent's output stream ends (EOF or process exit).
	Inbound <-chan wire.ActionMessage
	Close   func() error
}

// Transport starts a node agent for one host and returns the session
// used to drive it.
type Transport interface {
	Start() (*Session, error)
}
