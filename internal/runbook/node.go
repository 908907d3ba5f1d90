package runbook

import (
	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/action"
	"github.com/tiron-sh/tiron/internal/value"
)

// Node is one host targeted by a run, with its fully layered variable
// scope and the compiled actions to execute on it.
type Node struct {
	ID         uuid.UUID
	Host       string
	Vars       map[string]value.Value
	RemoteUser string
	Become     bool
	Actions    []action.Data

	remoteUserSet bool
	becomeSet     bool
}

// NewNode returns a fresh Node for host, seeded with vars through
// overlay. Callers layer in outer group vars afterward via overlay as
// well, so that remote_user/become promotion always goes through the
// same code path regardless of where the vars originated.
func NewNode(host string, vars map[string]value.Value) *Node {
	n := &Node{ID: uuid.New(), Host: host, Vars: map[string]value.Value{}}
	n.overlay(vars)
	return n
}

// overlay fills in any key from src not already present on n.Vars,
// promoting remote_user/become to their dedicated fields the first
// time they appear — the "innermost wins" layering rule.
func (n *Node) overlay(src map[string]value.Value) {
	for key, v := range src {
		if _, exists := n.Vars[key]; exists {
			continue
		}
		if key == "remote_user" && !n.remoteUserSet && v.Kind == value.KindString {
			n.RemoteUser = v.String
			n.remoteUserSet = true
		}
		if key == "become" && !n.becomeSet && v.Kind == value.KindBool {
			n.Become = v.Bool
			n.becomeSet = true
		}
		n.Vars[key] = v
	}
}
