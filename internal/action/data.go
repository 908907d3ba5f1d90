package action

import "github.com/google/uuid"

// Data is the controller-side plan record produced by
// internal/runbook.BuildActions: a compiled, opaque payload keyed by
// Kind. It mirrors internal/wire.ActionData, which is its wire form
// once a Run hands it to a transport.
type Data struct {
	ID      uuid.UUID
	Name    string
	Kind    string
	Payload []byte
}
