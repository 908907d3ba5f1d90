// Package value implements the span-tagged configuration value model
// used by the runbook compiler: a small closed set of kinds (null,
// bool, int, string, list, object), each optionally carrying the byte
// span of the expression it was parsed from, plus evaluation of
// variable references against a flat per-host context.
package value

import (
	"fmt"
	"sort"

	"github.com/tiron-sh/tiron/internal/origin"
)

// Kind tags which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a span-tagged configuration value. Exactly one of the
// typed fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Span *origin.Span

	Bool   bool
	Int    int64
	String string
	List   []Value
	Object map[string]Value
}

// Null returns a synthesized (spanless) null value.
func Null() Value { return Value{Kind: KindNull} }

// BoolValue returns a synthesized bool value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntValue returns a synthesized int value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// StringValue returns a synthesized string value.
func StringValue(s string) Value { return Value{Kind: KindString, String: s} }

// ListValue returns a synthesized list value.
func ListValue(items []Value) Value { return Value{Kind: KindList, List: items} }

// ObjectValue returns a synthesized object value.
func ObjectValue(fields map[string]Value) Value { return Value{Kind: KindObject, Object: fields} }

// WithSpan returns a copy of v carrying span.
func (v Value) WithSpan(span *origin.Span) Value {
	v.Span = span
	return v
}

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// TypeName returns the lowercase name of v's Kind ("string", "list",
// ...).
func (v Value) TypeName() string { return v.Kind.String() }

// Context is the flat variable scope a runbook attribute evaluates
// against: one level of group vars layered under job/node vars,
// "innermost wins" resolution performed by the caller before Evaluate
// is invoked (see internal/runbook).
type Context struct {
	vars map[string]Value
}

// NewContext builds a Context from a variable map. The map is copied
// defensively so later mutation of the caller's map does not leak in.
func NewContext(vars map[string]Value) *Context {
	c := &Context{vars: make(map[string]Value, len(vars))}
	for k, v := range vars {
		c.vars[k] = v
	}
	return c
}

// Lookup returns the named variable and whether it was bound.
func (c *Context) Lookup(name string) (Value, bool) {
	if c == nil {
		return Value{}, false
	}
	v, ok := c.vars[name]
	return v, ok
}

// Merge returns a new Context with other's bindings layered over c's
// (other wins on key collision), matching the runbook's "innermost
// wins" variable-scoping rule.
func (c *Context) Merge(other map[string]Value) *Context {
	merged := make(map[string]Value, len(c.vars)+len(other))
	for k, v := range c.vars {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return &Context{vars: merged}
}

// Keys returns the context's variable names in sorted order, useful
// for deterministic error messages and tests.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.vars))
	for k := range c.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnresolvedVariableError is returned by Evaluate when an expression
// references a variable absent from the context.
type UnresolvedVariableError struct {
	Name string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("unresolved variable reference: %s", e.Name)
}

// Evaluate resolves a variable-reference expression against ctx. It
// is the evaluation half of SpannedValue::from_expression's non-array
// branch: literals never reach here (internal/runbook's evalExpr
// converts them to Values directly), so Evaluate only needs
// to handle the one dynamic case, a bare variable name.
func Evaluate(ctx *Context, name string, span *origin.Span) (Value, error) {
	v, ok := ctx.Lookup(name)
	if !ok {
		return Value{}, &UnresolvedVariableError{Name: name}
	}
	return v.WithSpan(span), nil
}
