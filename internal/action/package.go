package action

import (
	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/wire"
)

// PackageAction installs, removes, or upgrades one or more packages
// through the host's package manager. The node agent dispatches to
// the detected provider (apt, dnf, pacman, brew, ...) — see
// internal/nodeaction/package.go.
type PackageAction struct{}

func (a *PackageAction) Kind() string { return "package" }

func (a *PackageAction) Doc() ActionDoc {
	return ActionDoc{
		Description: "Install, remove, or upgrade a package by name.",
		Params: []ParamDoc{
			{Name: "name", Required: true, Types: []ParamType{TString(), TList(KindString)}, Description: "package name, or list of package names"},
			{Name: "state", Required: false, Types: []ParamType{TEnum("present", "absent", "latest")}, Description: "desired state, defaults to present"},
		},
	}
}

func (a *PackageAction) Compile(o *origin.Origin, paramsSpan *origin.Span, params *Params) ([]byte, error) {
	names, _ := params.StringList("name")
	state, ok := params.String("state")
	if !ok {
		state = "present"
	}

	e := wire.NewEncoder()
	e.StringList(names)
	e.String(state)
	return e.Bytes(), nil
}
