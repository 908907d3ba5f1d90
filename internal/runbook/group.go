package runbook

import "github.com/tiron-sh/tiron/internal/value"

// EntryKind tags whether a GroupConfig entry names a host or a
// nested group.
type EntryKind int

const (
	EntryHost EntryKind = iota
	EntryGroup
)

// HostOrGroupEntry is one ordered entry inside a group body: either a
// `host "<name>" { ... }` or a `group "<name>" { ... }` child, each
// with its own variable overlay.
type HostOrGroupEntry struct {
	Kind EntryKind
	Name string
	Vars map[string]value.Value
}

// GroupConfig is one declared `group "<name>" { ... }` block.
type GroupConfig struct {
	Hosts []HostOrGroupEntry
	Vars  map[string]value.Value
	// Imported holds the canonical path of the runbook this group was
	// re-exported from via a `use { group "<name>" { ... } }` block,
	// empty when the group was declared directly.
	Imported string
}
