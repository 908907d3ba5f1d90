package value

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tiron-sh/tiron/internal/origin"
)

func TestContextMergeInnermostWins(t *testing.T) {
	t.Parallel()

	outer := NewContext(map[string]Value{
		"env":  StringValue("prod"),
		"port": IntValue(8080),
	})
	inner := outer.Merge(map[string]Value{
		"port": IntValue(9090),
	})

	v, ok := inner.Lookup("port")
	require.True(t, ok)
	require.Equal(t, int64(9090), v.Int)

	v, ok = inner.Lookup("env")
	require.True(t, ok)
	require.Equal(t, "prod", v.String)
}

func TestEvaluateResolvesVariable(t *testing.T) {
	t.Parallel()

	ctx := NewContext(map[string]Value{"name": StringValue("web-01")})
	span := &origin.Span{Start: 4, End: 8}

	v, err := Evaluate(ctx, "name", span)
	require.NoError(t, err)
	require.Equal(t, KindString, v.Kind)
	require.Equal(t, "web-01", v.String)
	require.Equal(t, span, v.Span)
}

func TestEvaluateUnresolvedVariable(t *testing.T) {
	t.Parallel()

	ctx := NewContext(nil)

	_, err := Evaluate(ctx, "missing", nil)
	require.Error(t, err)

	var unresolved *UnresolvedVariableError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "missing", unresolved.Name)
}

func TestValueTypeName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "list", ListValue([]Value{IntValue(1)}).TypeName())
	require.Equal(t, "null", Null().TypeName())
	require.True(t, Null().IsNull())
}

func TestContextKeysSorted(t *testing.T) {
	t.Parallel()

	ctx := NewContext(map[string]Value{"zeta": Null(), "alpha": Null()})
	require.Equal(t, []string{"alpha", "zeta"}, ctx.Keys())
}
