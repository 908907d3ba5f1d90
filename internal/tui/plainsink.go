package tui

import (
	"fmt"
	"io"

	"github.com/tiron-sh/tiron/internal/engine"
	"github.com/tiron-sh/tiron/internal/wire"
)

// PlainSink drains events and writes one log line per event to w,
// in place of the interactive Bubbletea program — used when stdout
// isn't a terminal so a run's output stays script-safe. It returns
// once events closes, reporting whether every run it saw succeeded.
func PlainSink(w io.Writer, events <-chan engine.Event) bool {
	success := true
	for ev := range events {
		switch ev.Kind {
		case engine.EventRunStarted:
			fmt.Fprintf(w, "run %s: started\n", ev.RunName)
		case engine.EventRunCompleted:
			if !ev.Success {
				success = false
			}
			fmt.Fprintf(w, "run %s: completed success=%v\n", ev.RunName, ev.Success)
		case engine.EventNodeStartFailed:
			success = false
			fmt.Fprintf(w, "run %s host %s: failed to start: %s\n", ev.RunName, ev.Host, ev.Reason)
		case engine.EventAction:
			writeActionLine(w, ev)
		}
	}
	return success
}

func writeActionLine(w io.Writer, ev engine.Event) {
	switch ev.Action.Kind {
	case wire.ActionMessageStarted:
		fmt.Fprintf(w, "run %s host %s: action started\n", ev.RunName, ev.Host)
	case wire.ActionMessageOutputLine:
		fmt.Fprintf(w, "run %s host %s: %s\n", ev.RunName, ev.Host, ev.Action.Content)
	case wire.ActionMessageResult:
		fmt.Fprintf(w, "run %s host %s: action result success=%v\n", ev.RunName, ev.Host, ev.Action.Success)
	case wire.ActionMessageNodeShutdown:
		fmt.Fprintf(w, "run %s host %s: node shutdown success=%v\n", ev.RunName, ev.Host, ev.Action.Success)
	case wire.ActionMessageNodeStartFailed:
		fmt.Fprintf(w, "run %s host %s: node start failed: %s\n", ev.RunName, ev.Host, ev.Action.Reason)
	}
}
