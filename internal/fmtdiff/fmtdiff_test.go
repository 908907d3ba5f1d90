package fmtdiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderEmptyWhenUnchanged(t *testing.T) {
	t.Parallel()

	content := []byte("group \"web\" {\n}\n")
	require.Equal(t, "", Render("site.tr", content, content))
}

func TestRenderShowsDiffForRewrite(t *testing.T) {
	t.Parallel()

	original := []byte("group \"web\"   {\n}\n")
	formatted := []byte("group \"web\" {\n}\n")

	out := Render("site.tr", original, formatted)
	require.NotEmpty(t, out)
	require.Contains(t, out, "site.tr")
}
