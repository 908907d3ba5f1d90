package action

import (
	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/wire"
)

// CommandAction runs an arbitrary command on the host.
type CommandAction struct{}

func (a *CommandAction) Kind() string { return "command" }

func (a *CommandAction) Doc() ActionDoc {
	return ActionDoc{
		Description: "Run a command on the host.",
		Params: []ParamDoc{
			{Name: "cmd", Required: true, Types: []ParamType{TString()}, Description: "the executable to run (not passed through a shell)"},
			{Name: "args", Required: false, Types: []ParamType{TList(KindString)}, Description: "arguments passed to cmd"},
		},
	}
}

func (a *CommandAction) Compile(o *origin.Origin, paramsSpan *origin.Span, params *Params) ([]byte, error) {
	cmd, _ := params.String("cmd")
	args, _ := params.StringList("args")

	e := wire.NewEncoder()
	e.String(cmd)
	e.StringList(args)
	return e.Bytes(), nil
}
