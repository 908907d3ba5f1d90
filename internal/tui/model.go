// Package tui renders an engine run's progress, either as an
// interactive Bubbletea program or, on non-terminal stdout, as a
// flat stream of log lines through PlainSink.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/engine"
	"github.com/tiron-sh/tiron/internal/wire"
)

// eventMsg wraps one engine.Event for Bubbletea's Update loop.
type eventMsg engine.Event

// closedMsg signals the event channel has drained.
type closedMsg struct{}

type actionStatus int

const (
	actionPending actionStatus = iota
	actionRunning
	actionSuccess
	actionFailed
)

type actionView struct {
	name   string
	status actionStatus
	lines  []string
}

type hostView struct {
	host    string
	order   []uuid.UUID
	actions map[uuid.UUID]*actionView
	failed  bool
	done    bool
}

type runView struct {
	name      string
	hostOrder []uuid.UUID
	hosts     map[uuid.UUID]*hostView
	completed bool
	success   bool
}

// Model is the Bubbletea model tracking every run's host/action
// timeline as events arrive off the engine's sink channel.
type Model struct {
	events    <-chan engine.Event
	runOrder  []uuid.UUID
	runs      map[uuid.UUID]*runView
	finished  bool
	allPassed bool
}

// NewModel returns a Model consuming events.
func NewModel(events <-chan engine.Event) Model {
	return Model{
		events:    events,
		runs:      map[uuid.UUID]*runView{},
		allPassed: true,
	}
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) ensureRun(id uuid.UUID, name string) *runView {
	rv, ok := m.runs[id]
	if !ok {
		rv = &runView{name: name, hosts: map[uuid.UUID]*hostView{}}
		m.runs[id] = rv
		m.runOrder = append(m.runOrder, id)
	}
	return rv
}

func (m *Model) ensureHost(rv *runView, id uuid.UUID, host string) *hostView {
	hv, ok := rv.hosts[id]
	if !ok {
		hv = &hostView{host: host, actions: map[uuid.UUID]*actionView{}}
		rv.hosts[id] = hv
		rv.hostOrder = append(rv.hostOrder, id)
	}
	return hv
}

func (m *Model) ensureAction(hv *hostView, id uuid.UUID, name string) *actionView {
	av, ok := hv.actions[id]
	if !ok {
		av = &actionView{name: name}
		hv.actions[id] = av
		hv.order = append(hv.order, id)
	}
	return av
}

func (hv *hostView) applyAction(msg wire.ActionMessage, ensure func(uuid.UUID, string) *actionView) {
	switch msg.Kind {
	case wire.ActionMessageStarted:
		av := ensure(msg.ActionID, "")
		av.status = actionRunning
	case wire.ActionMessageOutputLine:
		av := ensure(msg.ActionID, "")
		av.lines = append(av.lines, msg.Content)
	case wire.ActionMessageResult:
		av := ensure(msg.ActionID, "")
		if msg.Success {
			av.status = actionSuccess
		} else {
			av.status = actionFailed
			hv.failed = true
		}
	case wire.ActionMessageNodeShutdown:
		hv.done = true
		if !msg.Success {
			hv.failed = true
		}
	case wire.ActionMessageNodeStartFailed:
		hv.done = true
		hv.failed = true
	}
}

func statusLabel(s actionStatus) string {
	switch s {
	case actionRunning:
		return "running"
	case actionSuccess:
		return "success"
	case actionFailed:
		return "failed"
	default:
		return "pending"
	}
}
