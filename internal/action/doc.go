// Package action is the controller-side half of the action catalog:
// each kind declares a typed parameter schema and compiles an
// evaluated params block into the opaque payload bytes the node agent
// (internal/nodeaction) later decodes and executes. Only kind names
// need to agree between the two halves.
package action

import (
	"fmt"
	"strings"

	"github.com/tiron-sh/tiron/internal/value"
)

// ParamKind is the base type a ParamType matches against.
type ParamKind int

const (
	KindString ParamKind = iota
	KindBool
	KindList
	KindEnum
)

// ParamType is one accepted shape for a parameter's value, tried in
// declaration order during compilation ("the first match wins").
type ParamType struct {
	Kind   ParamKind
	ListOf ParamKind // meaningful when Kind == KindList
	Enum   []string  // meaningful when Kind == KindEnum
}

// TString matches a plain string value.
func TString() ParamType { return ParamType{Kind: KindString} }

// TBool matches a plain bool value.
func TBool() ParamType { return ParamType{Kind: KindBool} }

// TList matches a list whose elements are all of base kind.
func TList(base ParamKind) ParamType { return ParamType{Kind: KindList, ListOf: base} }

// TEnum matches a string value against a closed set of allowed
// literals.
func TEnum(values ...string) ParamType { return ParamType{Kind: KindEnum, Enum: values} }

func (t ParamType) String() string {
	switch t.Kind {
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindList:
		return fmt.Sprintf("List(%s)", baseName(t.ListOf))
	case KindEnum:
		quoted := make([]string, len(t.Enum))
		for i, v := range t.Enum {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return "Enum of " + strings.Join(quoted, ", ")
	default:
		return "Unknown"
	}
}

func baseName(k ParamKind) string {
	switch k {
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

func (t ParamType) matches(v value.Value) bool {
	switch t.Kind {
	case KindString:
		return v.Kind == value.KindString
	case KindBool:
		return v.Kind == value.KindBool
	case KindEnum:
		if v.Kind != value.KindString {
			return false
		}
		for _, allowed := range t.Enum {
			if v.String == allowed {
				return true
			}
		}
		return false
	case KindList:
		if v.Kind != value.KindList {
			return false
		}
		base := TString()
		if t.ListOf == KindBool {
			base = TBool()
		}
		for _, item := range v.List {
			if !base.matches(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ParamDoc documents one named parameter.
type ParamDoc struct {
	Name        string
	Required    bool
	Types       []ParamType
	Description string
}

// ActionDoc documents one action kind's full schema, printed by the
// `tiron action` CLI subcommand.
type ActionDoc struct {
	Description string
	Params      []ParamDoc
}
