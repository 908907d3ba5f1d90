package runbook

import "github.com/tiron-sh/tiron/internal/parser"

// Job is one declared `job "<name>" { ... }` block. Its body is
// stored verbatim — validation is deferred to plan building, where
// each `action` child is compiled in the calling node's scope.
type Job struct {
	Block *parser.Block
	// Imported holds the canonical path of the runbook this job was
	// re-exported from, empty when the job was declared directly.
	Imported string
}
