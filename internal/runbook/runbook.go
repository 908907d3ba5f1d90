// Package runbook implements the two-pass runbook loader: parsing
// `use`/`group`/`job`/`run` blocks into an in-memory Runbook, resolving
// imports (with cycle prevention), flattening inventories, and
// building the per-host action plan.
package runbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/action"
	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/parser"
	"github.com/tiron-sh/tiron/internal/value"
	tironerrors "github.com/tiron-sh/tiron/pkg/errors"
)

// maxImportLevel bounds recursive `use` chains.
const maxImportLevel = 500

// Runbook is one loaded `.tr` file plus everything it transitively
// imports.
type Runbook struct {
	Origin  *origin.Origin
	Groups  map[string]*GroupConfig
	Jobs    map[string]*Job
	Imports map[string]*Runbook // keyed by canonical path
	Runs    []*Run
	Level   int

	catalog action.Catalog
}

// Load reads and parses path as a top-level runbook (parse_run=true).
func Load(path string) (*Runbook, error) {
	return load(path, 0, true)
}

func load(path string, level int, parseRun bool) (*Runbook, error) {
	if level > maxImportLevel {
		return nil, fmt.Errorf("runbook: import depth exceeds %d, probable cycle", maxImportLevel)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("runbook: can't resolve path %s: %w", path, err)
	}
	cwd := filepath.Dir(abs)

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("runbook: can't read %s: %w", abs, err)
	}

	o := origin.New(cwd, abs, string(data))

	rb := &Runbook{
		Origin:  o,
		Groups:  map[string]*GroupConfig{},
		Jobs:    map[string]*Job{},
		Imports: map[string]*Runbook{},
		Level:   level,
		catalog: action.NewDefaultCatalog(),
	}

	body, err := parser.Parse(o.Data)
	if err != nil {
		return nil, configErrorFromSyntax(o, err)
	}

	if err := rb.parseBody(body, parseRun); err != nil {
		return nil, err
	}
	return rb, nil
}

func configErrorFromSyntax(o *origin.Origin, err error) error {
	if synErr, ok := err.(*parser.SyntaxError); ok {
		span := synErr.Span
		return tironerrors.NewConfigError(o, &span, synErr.Message, synErr)
	}
	return tironerrors.NewConfigError(o, nil, err.Error(), err)
}

func (rb *Runbook) parseBody(body *parser.Body, parseRun bool) error {
	for _, item := range body.Items {
		block, ok := item.(*parser.Block)
		if !ok {
			continue
		}
		var err error
		switch block.Keyword {
		case "use":
			err = rb.parseUse(block)
		case "group":
			err = rb.parseGroup(block)
		case "job":
			err = rb.parseJob(block)
		case "run":
			if parseRun {
				err = rb.parseRunBlock(block)
			}
		default:
			// unknown top-level blocks are ignored
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// requireOneLabel validates the "exactly one label" rule shared by
// every named block kind, returning the label and its span.
func requireOneLabel(o *origin.Origin, block *parser.Block, subject string) (string, origin.Span, error) {
	if len(block.Labels) == 0 {
		return "", origin.Span{}, tironerrors.NewConfigError(o, &block.KeywordSpan, subject+" doesn't exist", nil)
	}
	if len(block.Labels) > 1 {
		return "", origin.Span{}, tironerrors.NewConfigError(o, &block.LabelSpans[1], subject+" should only have one name", nil)
	}
	return block.Labels[0], block.LabelSpans[0], nil
}

func (rb *Runbook) parseGroup(block *parser.Block) error {
	name, nameSpan, err := requireOneLabel(rb.Origin, block, "group name")
	if err != nil {
		return err
	}
	if _, exists := rb.Groups[name]; exists {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, "group name already exists", nil)
	}

	group := &GroupConfig{Vars: map[string]value.Value{}}
	ctx := value.NewContext(nil)

	for _, item := range block.Body.Items {
		switch v := item.(type) {
		case *parser.Attribute:
			val, err := evalExpr(rb.Origin, ctx, v.Value)
			if err != nil {
				return err
			}
			group.Vars[v.Name] = val
		case *parser.Block:
			entry, err := rb.parseGroupEntry(name, v)
			if err != nil {
				return err
			}
			group.Hosts = append(group.Hosts, entry)
		}
	}

	rb.Groups[name] = group
	return nil
}

func (rb *Runbook) parseGroupEntry(groupName string, block *parser.Block) (HostOrGroupEntry, error) {
	var entry HostOrGroupEntry

	switch block.Keyword {
	case "host":
		name, _, err := requireOneLabel(rb.Origin, block, "host name")
		if err != nil {
			return entry, err
		}
		entry.Kind = EntryHost
		entry.Name = name
	case "group":
		name, nameSpan, err := requireOneLabel(rb.Origin, block, "group name")
		if err != nil {
			return entry, err
		}
		if name == groupName {
			return entry, tironerrors.NewConfigError(rb.Origin, &nameSpan, "group can't point to itself", nil)
		}
		if _, exists := rb.Groups[name]; !exists {
			return entry, tironerrors.NewConfigError(rb.Origin, &nameSpan, fmt.Sprintf("group %s doesn't exist", name), nil)
		}
		entry.Kind = EntryGroup
		entry.Name = name
	default:
		return entry, tironerrors.NewConfigError(rb.Origin, &block.KeywordSpan, "you can only have host or group", nil)
	}

	entry.Vars = map[string]value.Value{}
	ctx := value.NewContext(nil)
	for _, item := range block.Body.Items {
		attr, ok := item.(*parser.Attribute)
		if !ok {
			continue
		}
		val, err := evalExpr(rb.Origin, ctx, attr.Value)
		if err != nil {
			return entry, err
		}
		entry.Vars[attr.Name] = val
	}

	return entry, nil
}

func (rb *Runbook) parseJob(block *parser.Block) error {
	name, nameSpan, err := requireOneLabel(rb.Origin, block, "job name")
	if err != nil {
		return err
	}
	if _, exists := rb.Jobs[name]; exists {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, "job name already exists", nil)
	}
	rb.Jobs[name] = &Job{Block: block}
	return nil
}

func (rb *Runbook) parseUse(block *parser.Block) error {
	name, nameSpan, err := requireOneLabel(rb.Origin, block, "use path")
	if err != nil {
		return err
	}

	importPath := filepath.Join(rb.Origin.Cwd, name)
	canon, err := canonicalPath(importPath)
	if err != nil {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, fmt.Sprintf("can't canonicalize path: %v", err), err)
	}
	if _, exists := rb.Imports[canon]; exists {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, "path already imported", nil)
	}

	imported, err := load(importPath, rb.Level+1, false)
	if err != nil {
		return rebaseImportError(err, rb.Origin, nameSpan)
	}

	for _, item := range block.Body.Items {
		child, ok := item.(*parser.Block)
		if !ok {
			continue
		}
		switch child.Keyword {
		case "job":
			if err := rb.parseUseJob(imported, canon, child); err != nil {
				return err
			}
		case "group":
			if err := rb.parseUseGroup(imported, canon, child); err != nil {
				return err
			}
		}
	}

	rb.Imports[canon] = imported
	return nil
}

// rebaseImportError re-anchors a ConfigError raised while loading an
// imported file at the `use` label's span, while keeping the inner
// file's own location inside the message.
func rebaseImportError(err error, outer *origin.Origin, useSpan origin.Span) error {
	configErr, ok := err.(*tironerrors.ConfigError)
	if !ok {
		return tironerrors.NewConfigError(outer, &useSpan, err.Error(), err)
	}
	message := configErr.Message
	if configErr.Origin != nil {
		where := configErr.Origin.Path
		if configErr.Span != nil {
			loc := configErr.Origin.Resolve(*configErr.Span)
			where = fmt.Sprintf("%s:%d:%d", loc.Path, loc.Line, loc.StartCol+1)
		}
		message = fmt.Sprintf("%s (imported from %s)", message, where)
	}
	return tironerrors.NewConfigError(outer, &useSpan, message, err)
}

func findAsAlias(block *parser.Block) (string, bool) {
	for _, item := range block.Body.Items {
		attr, ok := item.(*parser.Attribute)
		if ok && attr.Name == "as" && attr.Value.Kind == parser.ExprString {
			return attr.Value.Str, true
		}
	}
	return "", false
}

func (rb *Runbook) parseUseJob(imported *Runbook, canon string, block *parser.Block) error {
	name, nameSpan, err := requireOneLabel(rb.Origin, block, "use job name")
	if err != nil {
		return err
	}

	importedName := name
	if alias, ok := findAsAlias(block); ok {
		importedName = alias
	}
	if _, exists := rb.Jobs[importedName]; exists {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, "job name already exists", nil)
	}

	job, ok := imported.Jobs[name]
	if !ok {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, "job name can't be imported, it doesn't exist in the imported runbook", nil)
	}

	rb.Jobs[importedName] = &Job{Block: job.Block, Imported: canon}
	return nil
}

func (rb *Runbook) parseUseGroup(imported *Runbook, canon string, block *parser.Block) error {
	name, nameSpan, err := requireOneLabel(rb.Origin, block, "use group name")
	if err != nil {
		return err
	}

	importedName := name
	if alias, ok := findAsAlias(block); ok {
		importedName = alias
	}
	if _, exists := rb.Groups[importedName]; exists {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, "group name already exists", nil)
	}

	group, ok := imported.Groups[name]
	if !ok {
		return tironerrors.NewConfigError(rb.Origin, &nameSpan, "group name can't be imported, it doesn't exist in the imported runbook", nil)
	}

	copied := *group
	copied.Imported = canon
	rb.Groups[importedName] = &copied
	return nil
}

func (rb *Runbook) parseRunBlock(block *parser.Block) error {
	name, nameSpan, err := requireOneLabel(rb.Origin, block, "you need to put a group name after run")
	if err != nil {
		return err
	}

	nodes, err := rb.HostsFromName(name)
	if err != nil {
		if _, notFound := err.(*errHostNotFound); !notFound {
			return tironerrors.NewConfigError(rb.Origin, &nameSpan, err.Error(), err)
		}
		nodes = nil
	}

	hosts := make([]*Node, 0, len(nodes))
	seen := map[string]bool{}
	for _, n := range nodes {
		if seen[n.Host] {
			continue
		}
		seen[n.Host] = true
		hosts = append(hosts, n)
	}
	if len(hosts) == 0 {
		hosts = append(hosts, NewNode("localhost", nil))
	}

	ctx := value.NewContext(nil)
	runVars := map[string]value.Value{}
	for _, item := range block.Body.Items {
		attr, ok := item.(*parser.Attribute)
		if !ok {
			continue
		}
		val, err := evalExpr(rb.Origin, ctx, attr.Value)
		if err != nil {
			return err
		}
		runVars[attr.Name] = val
	}
	for _, h := range hosts {
		h.overlay(runVars)
	}

	for _, h := range hosts {
		actions, err := rb.BuildActions(value.NewContext(h.Vars), block, 0)
		if err != nil {
			return err
		}
		h.Actions = actions
	}

	rb.Runs = append(rb.Runs, &Run{ID: uuid.New(), Name: name, Hosts: hosts})
	return nil
}

func evalExpr(o *origin.Origin, ctx *value.Context, e parser.Expr) (value.Value, error) {
	span := origin.Span{Start: e.Span.Start, End: e.Span.End}
	switch e.Kind {
	case parser.ExprString:
		return value.StringValue(e.Str).WithSpan(&span), nil
	case parser.ExprNumber:
		return value.IntValue(e.Num).WithSpan(&span), nil
	case parser.ExprBool:
		return value.BoolValue(e.Bool).WithSpan(&span), nil
	case parser.ExprNull:
		return value.Null().WithSpan(&span), nil
	case parser.ExprIdent:
		v, err := value.Evaluate(ctx, e.Ident, &span)
		if err != nil {
			return value.Value{}, tironerrors.NewConfigError(o, &span, err.Error(), err)
		}
		return v, nil
	case parser.ExprArray:
		items := make([]value.Value, len(e.Array))
		for i, item := range e.Array {
			v, err := evalExpr(o, ctx, item)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.ListValue(items).WithSpan(&span), nil
	case parser.ExprObject:
		fields := make(map[string]value.Value, len(e.Object))
		for _, f := range e.Object {
			v, err := evalExpr(o, ctx, f.Value)
			if err != nil {
				return value.Value{}, err
			}
			fields[f.Name] = v
		}
		return value.ObjectValue(fields).WithSpan(&span), nil
	default:
		return value.Value{}, fmt.Errorf("runbook: unknown expression kind %d", e.Kind)
	}
}
