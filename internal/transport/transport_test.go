package transport

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tiron-sh/tiron/internal/buildinfo"
	"github.com/tiron-sh/tiron/internal/wire"
)

// echoAgent is a minimal AgentFunc double: it acknowledges every
// action with a success Result and stops on Shutdown.
func echoAgent(in <-chan wire.NodeMessage, out chan<- wire.ActionMessage) {
	defer close(out)
	for msg := range in {
		switch msg.Kind {
		case wire.NodeMessageAction:
			out <- wire.Started(msg.Action.ID)
			out <- wire.Result(msg.Action.ID, true)
		case wire.NodeMessageShutdown:
			out <- wire.NodeShutdownMsg(true)
			return
		}
	}
}

func TestLocalTransportRoundTrips(t *testing.T) {
	t.Parallel()

	local := NewLocal(echoAgent)
	session, err := local.Start()
	require.NoError(t, err)

	id := uuid.New()
	session.Outbound <- wire.NodeMessage{Kind: wire.NodeMessageAction, Action: &wire.ActionData{ID: id, Name: "noop", Kind: "command"}}
	session.Outbound <- wire.NodeMessage{Kind: wire.NodeMessageShutdown}

	var got []wire.ActionMessage
	for msg := range session.Inbound {
		got = append(got, msg)
	}

	require.Len(t, got, 3)
	require.Equal(t, wire.ActionMessageStarted, got[0].Kind)
	require.Equal(t, id, got[0].ActionID)
	require.Equal(t, wire.ActionMessageResult, got[1].Kind)
	require.True(t, got[1].Success)
	require.Equal(t, wire.ActionMessageNodeShutdown, got[2].Kind)
	require.True(t, got[2].Success)

	require.NoError(t, session.Close())
}

func TestLocalTransportClosesInboundOnAgentExit(t *testing.T) {
	t.Parallel()

	local := NewLocal(func(in <-chan wire.NodeMessage, out chan<- wire.ActionMessage) {
		close(out)
	})
	session, err := local.Start()
	require.NoError(t, err)

	select {
	case _, ok := <-session.Inbound:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("inbound channel did not close")
	}
	require.NoError(t, session.Close())
}

func TestSSHOptionsValidateRequiresHostAndPath(t *testing.T) {
	t.Parallel()

	require.Error(t, SSHOptions{}.Validate())
	require.NoError(t, SSHOptions{Host: "example.com", RemotePath: "/tmp/tiron-node"}.Validate())
	require.Error(t, SSHOptions{Host: "example.com", RemotePath: "/tmp/tiron-node", Port: 70000}.Validate())
}

func TestSSHOptionsUserHost(t *testing.T) {
	t.Parallel()

	require.Equal(t, "example.com", SSHOptions{Host: "example.com"}.UserHost())
	require.Equal(t, "alice@example.com", SSHOptions{Host: "example.com", User: "alice"}.UserHost())
}

func TestDefaultRemotePathIncludesVersion(t *testing.T) {
	t.Parallel()

	path := DefaultRemotePath()
	require.Contains(t, path, buildinfo.Version)
	require.Contains(t, path, "tiron-node")
}
