package action

import (
	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/wire"
)

// FileAction asserts a path's presence/absence and type on the host.
type FileAction struct{}

func (a *FileAction) Kind() string { return "file" }

func (a *FileAction) Doc() ActionDoc {
	return ActionDoc{
		Description: "Ensure a path exists as a file or directory, or is absent.",
		Params: []ParamDoc{
			{Name: "path", Required: true, Types: []ParamType{TString()}, Description: "path on the host"},
			{Name: "state", Required: true, Types: []ParamType{TEnum("file", "absent", "directory")}, Description: "desired state"},
		},
	}
}

func (a *FileAction) Compile(o *origin.Origin, paramsSpan *origin.Span, params *Params) ([]byte, error) {
	path, _ := params.String("path")
	state, _ := params.String("state")

	e := wire.NewEncoder()
	e.String(path)
	e.String(state)
	return e.Bytes(), nil
}
