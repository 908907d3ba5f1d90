package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tiron-sh/tiron/internal/agent"
	"github.com/tiron-sh/tiron/internal/engine"
	"github.com/tiron-sh/tiron/internal/logging"
	"github.com/tiron-sh/tiron/internal/nodeaction"
	"github.com/tiron-sh/tiron/internal/runbook"
	"github.com/tiron-sh/tiron/internal/transport"
	"github.com/tiron-sh/tiron/internal/tui"
	"github.com/tiron-sh/tiron/internal/wire"
)

func newRunCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [runbooks...]",
		Short: "run runbooks against their resolved inventories",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{Level: root.logLevel(), Component: "cli"})
			if err != nil {
				return err
			}
			eng := engine.New(newTransportFactory(logger.Component("transport")))

			for _, path := range runbookPaths(args) {
				rb, err := runbook.Load(path)
				if err != nil {
					return err
				}

				if !runRunbook(eng, rb) {
					return fmt.Errorf("run %s: failed", path)
				}
			}
			return nil
		},
	}
}

// runRunbook drives one runbook's runs through eng, rendering
// progress interactively when stdout is a terminal and falling back
// to a plain line-oriented renderer otherwise so piped/CI output
// stays script-safe.
func runRunbook(eng *engine.Engine, rb *runbook.Runbook) bool {
	sink := make(chan engine.Event, 64)
	done := make(chan bool, 1)

	go func() {
		done <- eng.RunAll(rb.Runs, sink)
		close(sink)
	}()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		program := tea.NewProgram(tui.NewModel(sink))
		if _, err := program.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	} else {
		tui.PlainSink(os.Stdout, sink)
	}

	return <-done
}

// newTransportFactory picks the in-process local transport for
// localhost/127.0.0.1 and the SSH transport for everything else,
// promoting the node's RemoteUser/Become into the transport's
// connection options.
func newTransportFactory(logger *logging.Logger) engine.TransportFactory {
	return func(node *runbook.Node) (transport.Transport, error) {
		if node.Host == "localhost" || node.Host == "127.0.0.1" {
			return transport.NewLocal(localAgent), nil
		}

		return transport.NewSSH(transport.SSHOptions{
			Host:       node.Host,
			User:       node.RemoteUser,
			Become:     node.Become,
			RemotePath: transport.DefaultRemotePath(),
			Logger:     logger,
		})
	}
}

// localAgent is the AgentFunc the local transport runs in-process for
// localhost/127.0.0.1 targets — the same agent the node binary drives
// over stdio, minus any wire encoding.
func localAgent(in <-chan wire.NodeMessage, out chan<- wire.ActionMessage) {
	agent.New(nodeaction.DefaultRegistry()).Run(in, out)
}
