package engine

import (
	"github.com/tiron-sh/tiron/internal/action"
	"github.com/tiron-sh/tiron/internal/runbook"
	"github.com/tiron-sh/tiron/internal/wire"
)

// runHost starts host's transport, streams its plan to the node
// agent, and forwards every reported ActionMessage to sink tagged
// with this run and host. It reports the host's success as observed
// from NodeShutdown, or false if the transport never came up.
func (e *Engine) runHost(run *runbook.Run, host *runbook.Node, sink Sink) bool {
	tr, err := e.NewTransport(host)
	if err != nil {
		sink <- Event{
			Kind: EventNodeStartFailed, RunID: run.ID, RunName: run.Name,
			HostID: host.ID, Host: host.Host, Reason: err.Error(),
		}
		return false
	}

	session, err := tr.Start()
	if err != nil {
		sink <- Event{
			Kind: EventNodeStartFailed, RunID: run.ID, RunName: run.Name,
			HostID: host.ID, Host: host.Host, Reason: err.Error(),
		}
		return false
	}
	defer session.Close()

	// inboundClosed unblocks sendActions the moment the agent stops
	// draining Outbound (it errored out early, or the process exited):
	// without it, a plan longer than Outbound's buffer would leave
	// sendActions stuck on a send nobody will ever read, and this
	// host's wg.Wait() in runOne would never return. It is closed
	// strictly before done is signalled, and sendDone is awaited
	// before runHost returns, so sendActions never races the deferred
	// session.Close() for a send on an already-closed Outbound.
	inboundClosed := make(chan struct{})
	sendDone := make(chan struct{})
	done := make(chan bool, 1)

	go func() {
		success := false
		for msg := range session.Inbound {
			sink <- Event{
				Kind: EventAction, RunID: run.ID, RunName: run.Name,
				HostID: host.ID, Host: host.Host, Action: msg,
			}
			if msg.Kind == wire.ActionMessageNodeShutdown {
				success = msg.Success
			}
		}
		close(inboundClosed)
		done <- success
	}()

	go func() {
		sendActions(session.Outbound, host.Actions, inboundClosed)
		close(sendDone)
	}()

	success := <-done
	<-sendDone
	return success
}

// sendActions streams act as NodeMessages onto outbound, aborting
// early if stop fires so a stuck send never blocks the caller.
func sendActions(outbound chan<- wire.NodeMessage, actions []action.Data, stop <-chan struct{}) {
	for _, act := range actions {
		msg := wire.NodeMessage{
			Kind: wire.NodeMessageAction,
			Action: &wire.ActionData{
				ID:      act.ID,
				Name:    act.Name,
				Kind:    act.Kind,
				Payload: act.Payload,
			},
		}
		select {
		case outbound <- msg:
		case <-stop:
			return
		}
	}

	select {
	case outbound <- wire.NodeMessage{Kind: wire.NodeMessageShutdown}:
	case <-stop:
	}
}
