package runbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	tironerrors "github.com/tiron-sh/tiron/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCopyToLocalhost(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello")
	path := writeFile(t, dir, "main.tr", `
run "main" {
  action "copy" {
    params {
      src = "./a.txt"
      dest = "/tmp/a.txt"
    }
  }
}
`)

	rb, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rb.Runs, 1)
	require.Len(t, rb.Runs[0].Hosts, 1)
	require.Equal(t, "localhost", rb.Runs[0].Hosts[0].Host)
	require.Len(t, rb.Runs[0].Hosts[0].Actions, 1)
	require.Equal(t, "copy", rb.Runs[0].Hosts[0].Actions[0].Kind)
}

func TestLoadMissingRequiredParameter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello")
	path := writeFile(t, dir, "main.tr", `
run "main" {
  action "copy" {
    params {
      dest = "/tmp/a.txt"
    }
  }
}
`)

	_, err := Load(path)
	require.Error(t, err)
	var compileErr *tironerrors.CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Contains(t, err.Error(), "can't find src")
}

func TestLoadEnumValidationFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tr", `
run "main" {
  action "file" {
    params {
      path = "/t"
      state = "nope"
    }
  }
}
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `state type should be Enum of "file", "absent", "directory"`)
}

func TestLoadJobRecursionCap(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tr", `
job "x" {
  action "job" {
    params {
      name = "x"
    }
  }
}

run "main" {
  action "job" {
    params {
      name = "x"
    }
  }
}
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "job name might have a endless loop here")
}

func TestLoadCyclicGroupReference(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tr", `
group "A" {
  group "A" {}
}

run "main" {}
`)

	_, err := Load(path)
	require.Error(t, err)
	var configErr *tironerrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	require.Contains(t, err.Error(), "group can't point to itself")
}

func TestLoadVariableLayering(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tr", `
group "g" {
  remote_user = "alice"

  host "web1" {
    remote_user = "bob"
  }

  host "web2" {}
}

run "g" {}
`)

	rb, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rb.Runs, 1)

	byHost := map[string]*Node{}
	for _, h := range rb.Runs[0].Hosts {
		byHost[h.Host] = h
	}

	require.Equal(t, "bob", byHost["web1"].RemoteUser)
	require.Equal(t, "alice", byHost["web2"].RemoteUser)
}

func TestLoadEmptyHostsResolvesToLocalhost(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tr", `
run "nonexistent" {}
`)

	rb, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rb.Runs[0].Hosts, 1)
	require.Equal(t, "localhost", rb.Runs[0].Hosts[0].Host)
}

func TestLoadUseImportWithAlias(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "lib.tr", `
job "deploy" {
  action "command" {
    params {
      cmd = "echo hi"
    }
  }
}
`)
	path := writeFile(t, dir, "main.tr", `
use "./lib.tr" {
  job "deploy" {
    as = "release"
  }
}

run "main" {
  action "job" {
    params {
      name = "release"
    }
  }
}
`)

	rb, err := Load(path)
	require.NoError(t, err)
	_, ok := rb.Jobs["release"]
	require.True(t, ok)
	require.Len(t, rb.Runs[0].Hosts[0].Actions, 1)
	require.Equal(t, "command", rb.Runs[0].Hosts[0].Actions[0].Kind)
}

func TestLoadUseMissingJobErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "lib.tr", `
group "empty" {}
`)
	path := writeFile(t, dir, "main.tr", `
use "./lib.tr" {
  job "missing" {}
}

run "main" {}
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "doesn't exist in the imported runbook")
}

func TestLoadUnknownRunTargetFallsBackToLocalhost(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tr", `
run "no-such-host" {}
`)

	rb, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rb.Runs[0].Hosts, 1)
	require.Equal(t, "localhost", rb.Runs[0].Hosts[0].Host)
}

func TestLoadSamePathImportedTwiceIsRejected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "lib.tr", `
group "g" {}
`)
	path := writeFile(t, dir, "main.tr", `
use "./lib.tr" {
  group "g" {}
}

use "./lib.tr" {
  group "g" { as = "g2" }
}
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "path already imported")
}
