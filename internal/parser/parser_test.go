package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGroupWithNestedHost(t *testing.T) {
	t.Parallel()

	src := `group "web" {
  vars = { remote_user = "alice" }
  host "web-01" {
    vars = { remote_user = "bob" }
  }
}`
	body, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, body.Items, 1)

	group, ok := body.Items[0].(*Block)
	require.True(t, ok)
	require.Equal(t, "group", group.Keyword)
	require.Equal(t, []string{"web"}, group.Labels)
	require.Len(t, group.Body.Items, 2)

	varsAttr, ok := group.Body.Items[0].(*Attribute)
	require.True(t, ok)
	require.Equal(t, "vars", varsAttr.Name)
	require.Equal(t, ExprObject, varsAttr.Value.Kind)
	require.Equal(t, "remote_user", varsAttr.Value.Object[0].Name)

	host, ok := group.Body.Items[1].(*Block)
	require.True(t, ok)
	require.Equal(t, "host", host.Keyword)
	require.Equal(t, []string{"web-01"}, host.Labels)
}

func TestParseActionWithParamsBlock(t *testing.T) {
	t.Parallel()

	src := `run "main" {
  action "copy" {
    name = "deploy config"
    params {
      src = "./a.txt"
      dest = "/tmp/a.txt"
    }
  }
}`
	body, err := Parse(src)
	require.NoError(t, err)

	run := body.Items[0].(*Block)
	action := run.Body.Items[0].(*Block)
	require.Equal(t, "action", action.Keyword)
	require.Equal(t, []string{"copy"}, action.Labels)

	params := action.Body.Items[1].(*Block)
	require.Equal(t, "params", params.Keyword)
	require.Empty(t, params.Labels)
	require.Len(t, params.Body.Items, 2)
}

func TestParseArrayAndIdentExpr(t *testing.T) {
	t.Parallel()

	src := `params {
  args = ["-y", "--force"]
  name = host.name
}`
	body, err := Parse(src)
	require.NoError(t, err)

	params := body.Items[0].(*Block)
	argsAttr := params.Body.Items[0].(*Attribute)
	require.Equal(t, ExprArray, argsAttr.Value.Kind)
	require.Len(t, argsAttr.Value.Array, 2)

	nameAttr := params.Body.Items[1].(*Attribute)
	require.Equal(t, ExprIdent, nameAttr.Value.Kind)
	require.Equal(t, "host.name", nameAttr.Value.Ident)
}

func TestParseMissingClosingBraceErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse(`group "web" {`)
	require.Error(t, err)

	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestFormatIsIdempotentAndPreservesOrder(t *testing.T) {
	t.Parallel()

	src := `group "web" {
vars={remote_user="alice",become=true}
host "web-01" {
vars={remote_user="bob"}
}
}
`
	body, err := Parse(src)
	require.NoError(t, err)

	formatted := Format(body)
	require.Equal(t, "group \"web\" {\n  vars = { remote_user = \"alice\", become = true }\n  host \"web-01\" {\n    vars = { remote_user = \"bob\" }\n  }\n}\n", formatted)

	reparsed, err := Parse(formatted)
	require.NoError(t, err)
	require.Equal(t, formatted, Format(reparsed))
}
