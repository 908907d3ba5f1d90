package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckCommandPrintsPathOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.tr")
	require.NoError(t, os.WriteFile(path, []byte(`
run "main" {
  action "command" {
    params {
      cmd = "echo"
    }
  }
}
`), 0o644))

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"check", path})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), path)
}

func TestCheckCommandFailsOnMissingRequiredParam(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.tr")
	require.NoError(t, os.WriteFile(path, []byte(`
run "main" {
  action "copy" {
    params {
      dest = "/tmp/a.txt"
    }
  }
}
`), 0o644))

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"check", path})

	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "src")
}
