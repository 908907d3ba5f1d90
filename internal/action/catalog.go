package action

import (
	"github.com/tiron-sh/tiron/internal/origin"
)

// Action is the compile-time half of one catalog entry. The
// execute-time half (internal/nodeaction) only needs the Kind string
// to agree with this Doc — the two halves deliberately don't share a
// Go interface, since only the serialized payload crosses the wire.
type Action interface {
	Kind() string
	Doc() ActionDoc
	Compile(o *origin.Origin, paramsSpan *origin.Span, params *Params) ([]byte, error)
}

// Catalog looks up a registered Action by its kind name. "job" is
// never a catalog entry — it is handled directly by
// internal/runbook's plan builder.
type Catalog interface {
	Lookup(kind string) (Action, bool)
	Names() []string
}

type registry map[string]Action

func (r registry) Lookup(kind string) (Action, bool) {
	a, ok := r[kind]
	return a, ok
}

func (r registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}

// NewDefaultCatalog returns the catalog seeded with the built-in
// action kinds: copy, file, command, git, package.
func NewDefaultCatalog() Catalog {
	r := registry{}
	for _, a := range []Action{
		&CopyAction{},
		&FileAction{},
		&CommandAction{},
		&GitAction{},
		&PackageAction{},
	} {
		r[a.Kind()] = a
	}
	return r
}
