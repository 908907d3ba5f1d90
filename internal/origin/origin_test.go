package origin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveFindsLineAndColumn(t *testing.T) {
	t.Parallel()

	data := "group \"web\" {\n  host bad-host\n}\n"
	o := New("/tmp", "site.tr", data)

	loc := o.Resolve(Span{Start: 16, End: 24})
	require.Equal(t, 2, loc.Line)
	require.Equal(t, 2, loc.StartCol)
	require.Equal(t, "  host bad-host", loc.LineContent)
}

func TestResolveFirstLine(t *testing.T) {
	t.Parallel()

	o := New("/tmp", "site.tr", "group \"web\" {}\n")

	loc := o.Resolve(Span{Start: 6, End: 11})
	require.Equal(t, 1, loc.Line)
	require.Equal(t, 6, loc.StartCol)
}

func TestRenderIncludesPathLineColumn(t *testing.T) {
	t.Parallel()

	data := "group \"web\" {\n  host bad-host\n}\n"
	o := New("/tmp", "site.tr", data)
	span := Span{Start: 16, End: 24}

	rendered := o.Render("unknown host reference", &span)
	require.Contains(t, rendered, "Error: unknown host reference")
	require.Contains(t, rendered, "site.tr:2:3")
	require.Contains(t, rendered, "  host bad-host")
	require.Contains(t, rendered, "^")
}

func TestRenderWithoutSpan(t *testing.T) {
	t.Parallel()

	o := New("/tmp", "site.tr", "")
	rendered := o.Render("file not found", nil)
	require.Equal(t, "Error: file not found", rendered)
}
