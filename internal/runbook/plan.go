package runbook

import (
	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/action"
	"github.com/tiron-sh/tiron/internal/origin"
	"github.com/tiron-sh/tiron/internal/parser"
	"github.com/tiron-sh/tiron/internal/value"
	tironerrors "github.com/tiron-sh/tiron/pkg/errors"
)

// maxJobDepth bounds recursive job inlining (`job "x"` invoking
// itself, directly or transitively).
const maxJobDepth = 500

// BuildActions expands every `action "<kind>" { ... }` child of block
// in order, evaluating attributes against ctx and inlining `job`
// pseudo-actions recursively.
func (rb *Runbook) BuildActions(ctx *value.Context, block *parser.Block, depth int) ([]action.Data, error) {
	if depth > maxJobDepth {
		return nil, tironerrors.NewConfigError(rb.Origin, &block.KeywordSpan, "job name might have a endless loop here", nil)
	}

	var actions []action.Data
	for _, item := range block.Body.Items {
		child, ok := item.(*parser.Block)
		if !ok || child.Keyword != "action" {
			continue
		}

		kind, kindSpan, err := requireOneLabel(rb.Origin, child, "action name")
		if err != nil {
			return nil, err
		}

		var paramsBlock *parser.Block
		var nameAttr *parser.Attribute
		for _, sub := range child.Body.Items {
			switch v := sub.(type) {
			case *parser.Block:
				if v.Keyword == "params" {
					paramsBlock = v
				}
			case *parser.Attribute:
				if v.Name == "name" {
					nameAttr = v
				}
			}
		}

		var displayName string
		if nameAttr != nil {
			nameVal, err := evalExpr(rb.Origin, ctx, nameAttr.Value)
			if err != nil {
				return nil, err
			}
			if nameVal.Kind != value.KindString {
				return nil, tironerrors.NewConfigError(rb.Origin, nameVal.Span, "name should be a string", nil)
			}
			displayName = nameVal.String
		}

		if paramsBlock == nil {
			return nil, tironerrors.NewConfigError(rb.Origin, &child.KeywordSpan, "action doesn't have params", nil)
		}

		attrs := map[string]value.Value{}
		for _, sub := range paramsBlock.Body.Items {
			attr, ok := sub.(*parser.Attribute)
			if !ok {
				continue
			}
			val, err := evalExpr(rb.Origin, ctx, attr.Value)
			if err != nil {
				return nil, err
			}
			attrs[attr.Name] = val
		}

		if kind == "job" {
			expanded, err := rb.expandJob(ctx, attrs, paramsBlock.FullSpan, depth)
			if err != nil {
				return nil, err
			}
			actions = append(actions, expanded...)
			continue
		}

		act, ok := rb.catalog.Lookup(kind)
		if !ok {
			return nil, tironerrors.NewConfigError(rb.Origin, &kindSpan, "action "+kind+" can't be found", nil)
		}

		params, err := action.ParseAttrs(rb.Origin, kind, act.Doc(), spanPtr(paramsBlock.FullSpan), attrs)
		if err != nil {
			return nil, err
		}

		payload, err := act.Compile(rb.Origin, spanPtr(paramsBlock.FullSpan), params)
		if err != nil {
			return nil, err
		}

		if displayName == "" {
			displayName = kind
		}
		actions = append(actions, action.Data{ID: uuid.New(), Name: displayName, Kind: kind, Payload: payload})
	}

	return actions, nil
}

func (rb *Runbook) expandJob(ctx *value.Context, attrs map[string]value.Value, paramsSpan origin.Span, depth int) ([]action.Data, error) {
	jobNameVal, ok := attrs["name"]
	if !ok {
		return nil, tironerrors.NewConfigError(rb.Origin, &paramsSpan, "job doesn't have name in params", nil)
	}
	if jobNameVal.Kind != value.KindString {
		return nil, tironerrors.NewConfigError(rb.Origin, jobNameVal.Span, "job name should be a string", nil)
	}

	job, ok := rb.Jobs[jobNameVal.String]
	if !ok {
		return nil, tironerrors.NewConfigError(rb.Origin, jobNameVal.Span, "can't find job name", nil)
	}

	scope := rb
	if job.Imported != "" {
		imported, ok := rb.Imports[job.Imported]
		if !ok {
			return nil, tironerrors.NewConfigError(rb.Origin, jobNameVal.Span, "can't find imported job", nil)
		}
		scope = imported
	}

	return scope.BuildActions(ctx, job.Block, depth+1)
}

func spanPtr(s origin.Span) *origin.Span { return &s }
