// Command tiron-node is the binary the SSH transport deploys to and
// spawns on each remote host. It speaks the wire protocol over its
// own stdin/stdout and drives internal/agent.Agent against whatever
// NodeMessages arrive there.
package main

import (
	"fmt"
	"os"

	"github.com/tiron-sh/tiron/internal/agent"
	"github.com/tiron-sh/tiron/internal/buildinfo"
	"github.com/tiron-sh/tiron/internal/nodeaction"
	"github.com/tiron-sh/tiron/internal/wire"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println(buildinfo.NodeVersionString())
		return
	}

	in, out := startStdioPump(os.Stdin, os.Stdout)

	a := agent.New(nodeaction.DefaultRegistry())
	a.Run(in, out)
}

// startStdioPump mirrors internal/transport's writer/reader pump from
// the other end of the wire: it decodes NodeMessage frames off r into
// the channel the agent reads from, and encodes ActionMessages the
// agent writes as frames onto w.
func startStdioPump(r *os.File, w *os.File) (<-chan wire.NodeMessage, chan<- wire.ActionMessage) {
	in := make(chan wire.NodeMessage, 16)
	out := make(chan wire.ActionMessage, 16)

	go func() {
		defer close(in)
		for {
			payload, err := wire.ReadFrame(r)
			if err != nil {
				return
			}
			msg, err := wire.DecodeNodeMessage(payload)
			if err != nil {
				return
			}
			in <- msg
		}
	}()

	go func() {
		for msg := range out {
			if err := wire.WriteFrame(w, wire.EncodeActionMessage(msg)); err != nil {
				return
			}
		}
	}()

	return in, out
}
