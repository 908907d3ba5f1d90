package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiron-sh/tiron/internal/buildinfo"
)

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), buildinfo.Version)
}

func TestActionCommandListsAllKinds(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"action"})

	require.NoError(t, root.Execute())
	for _, kind := range []string{"copy", "file", "command", "git", "package"} {
		require.Contains(t, buf.String(), kind)
	}
}

func TestActionCommandDescribesOneKind(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"action", "copy"})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), "src")
	require.Contains(t, buf.String(), "dest")
}

func TestActionCommandRejectsUnknownKind(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"action", "nope"})

	require.Error(t, root.Execute())
}
