package action

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/wire"
	tironerrors "github.com/tiron-sh/tiron/pkg/errors"
)

// CopyAction copies a file from the controller's filesystem to a
// host. Its source content is read at compile time so the resulting
// payload is self-contained: the node agent never needs access to
// the controller's filesystem.
type CopyAction struct{}

func (a *CopyAction) Kind() string { return "copy" }

func (a *CopyAction) Doc() ActionDoc {
	return ActionDoc{
		Description: "Copy a file from the controller to the host.",
		Params: []ParamDoc{
			{Name: "src", Required: true, Types: []ParamType{TString()}, Description: "path to the source file, relative to the runbook"},
			{Name: "dest", Required: true, Types: []ParamType{TString()}, Description: "destination path on the host"},
		},
	}
}

func (a *CopyAction) Compile(o *origin.Origin, paramsSpan *origin.Span, params *Params) ([]byte, error) {
	src, _ := params.String("src")
	dest, _ := params.String("dest")

	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.Cwd, src)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, tironerrors.NewCompileError(o, paramsSpan, a.Kind(), fmt.Sprintf("can't read copy source %s: %v", src, err), err)
	}

	e := wire.NewEncoder()
	e.String(dest)
	e.RawBytes(content)
	return e.Bytes(), nil
}
