package nodeaction

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tiron-sh/tiron/internal/wire"
)

func drain(ch chan wire.ActionMessage) []wire.ActionMessage {
	close(ch)
	var msgs []wire.ActionMessage
	for m := range ch {
		msgs = append(msgs, m)
	}
	return msgs
}

func TestCopyExecutorWritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "out.txt")

	e := NewEncoderPayload(dest, []byte("hello"))
	out := make(chan wire.ActionMessage, 4)
	err := (&CopyExecutor{}).Execute(context.Background(), uuid.New(), e, out)
	require.NoError(t, err)

	content, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	require.Equal(t, "hello", string(content))

	msgs := drain(out)
	require.Len(t, msgs, 1)
	require.Equal(t, wire.ActionMessageOutputLine, msgs[0].Kind)
}

func TestFileExecutorStates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "thing")

	mkDirPayload := func(path, state string) []byte {
		enc := wire.NewEncoder()
		enc.String(path)
		enc.String(state)
		return enc.Bytes()
	}

	out := make(chan wire.ActionMessage, 4)
	require.NoError(t, (&FileExecutor{}).Execute(context.Background(), uuid.New(), mkDirPayload(path, "directory"), out))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	drain(out)

	filePath := filepath.Join(path, "leaf")
	out2 := make(chan wire.ActionMessage, 4)
	require.NoError(t, (&FileExecutor{}).Execute(context.Background(), uuid.New(), mkDirPayload(filePath, "file"), out2))
	_, err = os.Stat(filePath)
	require.NoError(t, err)
	drain(out2)

	out3 := make(chan wire.ActionMessage, 4)
	require.NoError(t, (&FileExecutor{}).Execute(context.Background(), uuid.New(), mkDirPayload(filePath, "absent"), out3))
	_, err = os.Stat(filePath)
	require.True(t, os.IsNotExist(err))
	drain(out3)
}

func TestCommandExecutorStreamsOutput(t *testing.T) {
	t.Parallel()

	enc := wire.NewEncoder()
	enc.String("echo")
	enc.StringList([]string{"hi"})

	out := make(chan wire.ActionMessage, 8)
	id := uuid.New()
	err := (&CommandExecutor{}).Execute(context.Background(), id, enc.Bytes(), out)
	require.NoError(t, err)

	msgs := drain(out)
	require.NotEmpty(t, msgs)
	require.Equal(t, wire.ActionMessageOutputLine, msgs[0].Kind)
	require.Equal(t, "hi", msgs[0].Content)
	require.Equal(t, id, msgs[0].ActionID)
}

func TestCommandExecutorPropagatesFailure(t *testing.T) {
	t.Parallel()

	enc := wire.NewEncoder()
	enc.String("false")
	enc.StringList(nil)

	out := make(chan wire.ActionMessage, 8)
	err := (&CommandExecutor{}).Execute(context.Background(), uuid.New(), enc.Bytes(), out)
	require.Error(t, err)
	drain(out)
}

func TestDefaultRegistryHasAllBuiltins(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	for _, kind := range []string{"copy", "file", "command", "git", "package"} {
		_, ok := reg.Lookup(kind)
		require.True(t, ok, "missing executor for %s", kind)
	}

	_, ok := reg.Lookup("job")
	require.False(t, ok)
}

// NewEncoderPayload builds a copy-action payload the same way
// internal/action.CopyAction.Compile does.
func NewEncoderPayload(dest string, content []byte) []byte {
	enc := wire.NewEncoder()
	enc.String(dest)
	enc.RawBytes(content)
	return enc.Bytes()
}
