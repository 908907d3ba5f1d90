// Package engine drives a runbook's runs against a transport,
// sequencing runs strictly one after another while fanning its hosts
// out to concurrent workers, and reports lifecycle events to a sink
// channel the UI layer (internal/tui, or a plain writer) consumes.
package engine

import (
	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// EventKind tags the engine-level event union surfaced to the sink.
type EventKind int

const (
	EventRunStarted EventKind = iota
	EventRunCompleted
	EventNodeStartFailed
	EventAction // wraps one wire.ActionMessage, tagged with run/host
)

// Event is one line in the run's timeline. RunID/HostID are zero
// UUIDs when not applicable to Kind.
type Event struct {
	Kind    EventKind
	RunID   uuid.UUID
	RunName string
	HostID  uuid.UUID
	Host    string

	Success bool   // RunCompleted
	Reason  string // NodeStartFailed

	Action wire.ActionMessage // EventAction
}

// Sink receives engine events in emission order. The engine never
// closes the channel it was given — the caller owns that, the same
// way it owns starting the consuming goroutine.
type Sink chan<- Event
