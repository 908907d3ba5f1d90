package transport

import "github.com/tiron-sh/tiron/internal/wire"

// AgentFunc is the node agent's mainloop: it reads NodeMessages from
// in until the channel closes and writes ActionMessages to out,
// closing out itself when done. internal/agent's (*Agent).Run implements this
// signature; transport only depends on the shape, not the package, so
// the two sides stay decoupled the way the compile/execute action
// halves do.
type AgentFunc func(in <-chan wire.NodeMessage, out chan<- wire.ActionMessage)

// Local runs the node agent's mainloop in an in-process goroutine and
// hands the caller the two channels directly. No wire encoding
// happens at all — the channel element types are the same Go values
// the agent operates on, not serialized bytes — but they are the same
// types Session exposes for the SSH transport, so internal/engine
// treats both uniformly.
type Local struct {
	Agent AgentFunc
}

// NewLocal returns a Local transport that runs agent in-process.
func NewLocal(agent AgentFunc) *Local {
	return &Local{Agent: agent}
}

func (l *Local) Start() (*Session, error) {
	outbound := make(chan wire.NodeMessage, 16)
	inbound := make(chan wire.ActionMessage, 16)

	go l.Agent(outbound, inbound)

	closed := false
	return &Session{
		Outbound: outbound,
		Inbound:  inbound,
		Close: func() error {
			if !closed {
				closed = true
				close(outbound)
			}
			return nil
		},
	}, nil
}
