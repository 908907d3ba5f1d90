package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/engine"
)

// Update handles one engine event per call and re-arms the read for
// the next one, so the model never misses an event between renders.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.apply(engine.Event(msg))
		return m, waitForEvent(m.events)
	case closedMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) apply(ev engine.Event) {
	switch ev.Kind {
	case engine.EventRunStarted:
		m.ensureRun(ev.RunID, ev.RunName)
	case engine.EventRunCompleted:
		rv := m.ensureRun(ev.RunID, ev.RunName)
		rv.completed = true
		rv.success = ev.Success
		m.allPassed = m.allPassed && ev.Success
	case engine.EventNodeStartFailed:
		rv := m.ensureRun(ev.RunID, ev.RunName)
		hv := m.ensureHost(rv, ev.HostID, ev.Host)
		hv.failed = true
		hv.done = true
	case engine.EventAction:
		rv := m.ensureRun(ev.RunID, ev.RunName)
		hv := m.ensureHost(rv, ev.HostID, ev.Host)
		hv.applyAction(ev.Action, func(id uuid.UUID, name string) *actionView {
			return m.ensureAction(hv, id, name)
		})
	}
}
