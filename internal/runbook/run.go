package runbook

import "github.com/google/uuid"

// Run is one `run "<group-or-host>" { ... }` block expanded against
// the inventory: a deduplicated, ordered host list plus the actions
// compiled for each.
type Run struct {
	ID    uuid.UUID
	Name  string
	Hosts []*Node
}
