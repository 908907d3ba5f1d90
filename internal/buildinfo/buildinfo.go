// Package buildinfo holds the single version string shared by the
// controller CLI, the node agent's --version output, and the remote
// transport's version probe, so the three can never drift apart.
package buildinfo

// Version is the released version string. It is overridden at build
// time via -ldflags "-X github.com/tiron-sh/tiron/internal/buildinfo.Version=...".
var Version = "0.1.0"

// NodeVersionString is the exact text tiron-node --version prints,
// and the exact text the SSH transport's version probe matches
// against before deciding whether to redeploy the agent binary.
func NodeVersionString() string {
	return "tiron-node " + Version
}
