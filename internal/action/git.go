package action

import (
	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/wire"
)

// GitAction clones a git repository onto the host.
type GitAction struct{}

func (a *GitAction) Kind() string { return "git" }

func (a *GitAction) Doc() ActionDoc {
	return ActionDoc{
		Description: "Clone a git repository to a path on the host.",
		Params: []ParamDoc{
			{Name: "repo", Required: true, Types: []ParamType{TString()}, Description: "repository URL"},
			{Name: "dest", Required: true, Types: []ParamType{TString()}, Description: "destination path on the host"},
		},
	}
}

func (a *GitAction) Compile(o *origin.Origin, paramsSpan *origin.Span, params *Params) ([]byte, error) {
	repo, _ := params.String("repo")
	dest, _ := params.String("dest")

	e := wire.NewEncoder()
	e.String(repo)
	e.String(dest)
	return e.Bytes(), nil
}
