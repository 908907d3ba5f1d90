package action

import (
	"fmt"
	"strings"

	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/value"
	tironerrors "github.com/tiron-sh/tiron/pkg/errors"
)

// Params is the positionally-validated wrapper an Action's Compile
// method receives: every declared parameter has already been
// type-checked against its ActionDoc entry.
type Params struct {
	values map[string]value.Value
}

// String returns the named string parameter.
func (p *Params) String(name string) (string, bool) {
	v, ok := p.values[name]
	if !ok {
		return "", false
	}
	return v.String, true
}

// Bool returns the named bool parameter.
func (p *Params) Bool(name string) (bool, bool) {
	v, ok := p.values[name]
	if !ok {
		return false, false
	}
	return v.Bool, true
}

// StringList returns the named parameter as a string list, accepting
// either a list-of-string value or a single string promoted to a
// one-element list (used by `package`'s `name: string|list` param).
func (p *Params) StringList(name string) ([]string, bool) {
	v, ok := p.values[name]
	if !ok {
		return nil, false
	}
	if v.Kind == value.KindString {
		return []string{v.String}, true
	}
	out := make([]string, len(v.List))
	for i, item := range v.List {
		out[i] = item.String
	}
	return out, true
}

// ParseAttrs performs the compile-time type-try pass described by the
// catalog schema: for each declared parameter, in order, look it up
// in attrs, try each declared type, and fail on a missing-required or
// a type mismatch.
func ParseAttrs(o *origin.Origin, actionName string, doc ActionDoc, paramsSpan *origin.Span, attrs map[string]value.Value) (*Params, error) {
	result := &Params{values: make(map[string]value.Value, len(doc.Params))}

	for _, p := range doc.Params {
		attr, ok := attrs[p.Name]
		if !ok {
			if p.Required {
				return nil, tironerrors.NewCompileError(o, paramsSpan, actionName, fmt.Sprintf("can't find %s", p.Name), nil)
			}
			continue
		}

		matched := false
		for _, t := range p.Types {
			if t.matches(attr) {
				matched = true
				break
			}
		}
		if !matched {
			names := make([]string, len(p.Types))
			for i, t := range p.Types {
				names[i] = t.String()
			}
			msg := fmt.Sprintf("%s type should be %s", p.Name, strings.Join(names, " or "))
			span := attr.Span
			if span == nil {
				span = paramsSpan
			}
			return nil, tironerrors.NewCompileError(o, span, actionName, msg, nil)
		}

		result.values[p.Name] = attr
	}

	return result, nil
}
