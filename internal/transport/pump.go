package transport

import (
	"io"

	"github.com/tiron-sh/tiron/internal/wire"
)

// startPump spawns the writer/reader goroutine pair that frames
// messages over an arbitrary stdio-shaped pair: a writer goroutine
// pulls from outbound and encodes each message as one wire frame; a
// reader goroutine decodes one frame at a time off r and pushes onto
// inbound. The writer stops when outbound is closed; the reader stops
// on EOF or a decode error, closing inbound.
func startPump(w io.WriteCloser, r io.Reader) (chan<- wire.NodeMessage, <-chan wire.ActionMessage) {
	outbound := make(chan wire.NodeMessage, 16)
	inbound := make(chan wire.ActionMessage, 16)

	go func() {
		defer w.Close()
		for msg := range outbound {
			if err := wire.WriteFrame(w, wire.EncodeNodeMessage(msg)); err != nil {
				return
			}
		}
	}()

	go func() {
		defer close(inbound)
		for {
			payload, err := wire.ReadFrame(r)
			if err != nil {
				return
			}
			msg, err := wire.DecodeActionMessage(payload)
			if err != nil {
				return
			}
			inbound <- msg
		}
	}()

	return outbound, inbound
}
