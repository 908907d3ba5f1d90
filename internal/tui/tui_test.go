package tui

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tiron-sh/tiron/internal/engine"
	"github.com/tiron-sh/tiron/internal/wire"
)

func TestPlainSinkReportsOverallSuccess(t *testing.T) {
	t.Parallel()

	runID, hostID, actionID := uuid.New(), uuid.New(), uuid.New()
	events := make(chan engine.Event, 8)
	events <- engine.Event{Kind: engine.EventRunStarted, RunID: runID, RunName: "main"}
	events <- engine.Event{Kind: engine.EventAction, RunID: runID, HostID: hostID, Host: "web1", Action: wire.Started(actionID)}
	events <- engine.Event{Kind: engine.EventAction, RunID: runID, HostID: hostID, Host: "web1", Action: wire.Result(actionID, true)}
	events <- engine.Event{Kind: engine.EventRunCompleted, RunID: runID, RunName: "main", Success: true}
	close(events)

	var buf bytes.Buffer
	ok := PlainSink(&buf, events)

	require.True(t, ok)
	require.Contains(t, buf.String(), "run main: started")
	require.Contains(t, buf.String(), "action result success=true")
	require.Contains(t, buf.String(), "run main: completed success=true")
}

func TestPlainSinkReportsFailureOnNodeStartFailed(t *testing.T) {
	t.Parallel()

	runID, hostID := uuid.New(), uuid.New()
	events := make(chan engine.Event, 4)
	events <- engine.Event{Kind: engine.EventRunStarted, RunID: runID, RunName: "main"}
	events <- engine.Event{Kind: engine.EventNodeStartFailed, RunID: runID, RunName: "main", HostID: hostID, Host: "down", Reason: "no route"}
	events <- engine.Event{Kind: engine.EventRunCompleted, RunID: runID, RunName: "main", Success: false}
	close(events)

	var buf bytes.Buffer
	ok := PlainSink(&buf, events)

	require.False(t, ok)
	require.Contains(t, buf.String(), "failed to start: no route")
}

func TestModelApplyTracksRunAndHost(t *testing.T) {
	t.Parallel()

	runID, hostID, actionID := uuid.New(), uuid.New(), uuid.New()
	events := make(chan engine.Event)
	m := NewModel(events)

	m.apply(engine.Event{Kind: engine.EventRunStarted, RunID: runID, RunName: "main"})
	m.apply(engine.Event{Kind: engine.EventAction, RunID: runID, HostID: hostID, Host: "web1", Action: wire.Started(actionID)})
	m.apply(engine.Event{Kind: engine.EventAction, RunID: runID, HostID: hostID, Host: "web1", Action: wire.Result(actionID, true)})
	m.apply(engine.Event{Kind: engine.EventRunCompleted, RunID: runID, RunName: "main", Success: true})

	require.Len(t, m.runOrder, 1)
	rv := m.runs[runID]
	require.True(t, rv.completed)
	require.True(t, rv.success)
	require.Len(t, rv.hostOrder, 1)
	hv := rv.hosts[hostID]
	require.Equal(t, actionSuccess, hv.actions[actionID].status)
}
