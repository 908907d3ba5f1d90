package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tiron-sh/tiron/internal/nodeaction"
	"github.com/tiron-sh/tiron/internal/wire"
)

type fakeExecutor struct {
	fail bool
}

func (e *fakeExecutor) Execute(ctx context.Context, id uuid.UUID, payload []byte, out chan<- wire.ActionMessage) error {
	if e.fail {
		return fmt.Errorf("boom")
	}
	out <- wire.OutputLine(id, "ok", wire.LevelInfo)
	return nil
}

func runAgent(t *testing.T, reg nodeaction.Registry, msgs []wire.NodeMessage) []wire.ActionMessage {
	t.Helper()
	in := make(chan wire.NodeMessage, len(msgs))
	out := make(chan wire.ActionMessage, 32)
	for _, m := range msgs {
		in <- m
	}
	close(in)

	New(reg).Run(in, out)

	var got []wire.ActionMessage
	for m := range out {
		got = append(got, m)
	}
	return got
}

func TestAgentRunsActionsUntilShutdown(t *testing.T) {
	t.Parallel()

	reg := nodeaction.Registry{"noop": &fakeExecutor{}}
	id1, id2 := uuid.New(), uuid.New()

	got := runAgent(t, reg, []wire.NodeMessage{
		{Kind: wire.NodeMessageAction, Action: &wire.ActionData{ID: id1, Kind: "noop"}},
		{Kind: wire.NodeMessageAction, Action: &wire.ActionData{ID: id2, Kind: "noop"}},
		{Kind: wire.NodeMessageShutdown},
	})

	require.Len(t, got, 7)
	require.Equal(t, wire.ActionMessageStarted, got[0].Kind)
	require.Equal(t, id1, got[0].ActionID)
	require.Equal(t, wire.ActionMessageResult, got[2].Kind)
	require.True(t, got[2].Success)
	require.Equal(t, wire.ActionMessageNodeShutdown, got[6].Kind)
	require.True(t, got[6].Success)
}

func TestAgentEntersErrorAbsorbingOnFailure(t *testing.T) {
	t.Parallel()

	reg := nodeaction.Registry{
		"bad":  &fakeExecutor{fail: true},
		"noop": &fakeExecutor{},
	}
	failing, dropped := uuid.New(), uuid.New()

	got := runAgent(t, reg, []wire.NodeMessage{
		{Kind: wire.NodeMessageAction, Action: &wire.ActionData{ID: failing, Kind: "bad"}},
		{Kind: wire.NodeMessageAction, Action: &wire.ActionData{ID: dropped, Kind: "noop"}},
		{Kind: wire.NodeMessageShutdown},
	})

	// Started, OutputLine(error), Result(false), NodeShutdown(false) — the
	// second action and the explicit Shutdown message are both dropped;
	// the agent already terminated after the first failure.
	require.Len(t, got, 4)
	require.Equal(t, wire.ActionMessageStarted, got[0].Kind)
	require.Equal(t, wire.ActionMessageOutputLine, got[1].Kind)
	require.Equal(t, wire.LevelError, got[1].Level)
	require.Equal(t, wire.ActionMessageResult, got[2].Kind)
	require.False(t, got[2].Success)
	require.Equal(t, wire.ActionMessageNodeShutdown, got[3].Kind)
	require.False(t, got[3].Success)

	_ = dropped
}

func TestAgentUnknownActionKindFailsNode(t *testing.T) {
	t.Parallel()

	got := runAgent(t, nodeaction.Registry{}, []wire.NodeMessage{
		{Kind: wire.NodeMessageAction, Action: &wire.ActionData{ID: uuid.New(), Kind: "mystery"}},
	})

	require.Len(t, got, 3)
	require.Equal(t, wire.ActionMessageResult, got[1].Kind)
	require.False(t, got[1].Success)
	require.Equal(t, wire.ActionMessageNodeShutdown, got[2].Kind)
	require.False(t, got[2].Success)
}
