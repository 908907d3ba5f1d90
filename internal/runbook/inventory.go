package runbook

import "fmt"

// errHostNotFound marks the case where a run's target name matches
// neither a declared group nor a declared host entry. The caller
// treats this as "empty inventory" rather than a hard failure: the
// run falls back to a single synthetic localhost node.
type errHostNotFound struct{ name string }

func (e *errHostNotFound) Error() string { return fmt.Sprintf("can't find host with name %s", e.name) }

// HostsFromName flattens a declared group, or a single bare host
// name, into a concrete Node list. A group's entries are walked in
// declaration order. A bare host name is searched for across groups
// in map order, so when it appears in several groups, which entry's
// vars it gets is not defined.
func (rb *Runbook) HostsFromName(name string) ([]*Node, error) {
	if _, ok := rb.Groups[name]; ok {
		return rb.hostsFromGroup(name)
	}

	for _, group := range rb.Groups {
		for _, entry := range group.Hosts {
			if entry.Kind == EntryHost && entry.Name == name {
				return []*Node{NewNode(name, entry.Vars)}, nil
			}
		}
	}

	return nil, &errHostNotFound{name: name}
}

func (rb *Runbook) hostsFromGroup(name string) ([]*Node, error) {
	group, ok := rb.Groups[name]
	if !ok {
		return nil, fmt.Errorf("hosts doesn't have group %s", name)
	}

	scope := rb
	if group.Imported != "" {
		imported, ok := rb.Imports[group.Imported]
		if !ok {
			return nil, fmt.Errorf("can't find imported runbook for group %s", name)
		}
		scope = imported
	}

	var hosts []*Node
	for _, entry := range group.Hosts {
		var local []*Node
		switch entry.Kind {
		case EntryHost:
			local = []*Node{NewNode(entry.Name, entry.Vars)}
		case EntryGroup:
			nested, err := scope.hostsFromGroup(entry.Name)
			if err != nil {
				return nil, err
			}
			for _, h := range nested {
				h.overlay(entry.Vars)
			}
			local = nested
		}

		for _, h := range local {
			h.overlay(group.Vars)
		}
		hosts = append(hosts, local...)
	}

	return hosts, nil
}
