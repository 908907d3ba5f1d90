// Package parser turns a lexer.Token stream into an AST for the
// block-structured runbook grammar, and renders that AST back to
// canonical source text.
package parser

import "github.com/tiron-sh/tiron/internal/origin"

// Body is an ordered sequence of attributes and nested blocks, the
// contents of a file or of one block's braces.
type Body struct {
	Items []Item
}

// Item is either an *Attribute or a *Block.
type Item interface {
	itemSpan() origin.Span
}

// Attribute is a `name = expr` pair.
type Attribute struct {
	Name      string
	NameSpan  origin.Span
	Value     Expr
	FullSpan  origin.Span
}

func (a *Attribute) itemSpan() origin.Span { return a.FullSpan }

// Block is a `keyword "label"... { body }` construct. Labels has zero
// entries for unlabeled blocks (e.g. `params { ... }`), one for the
// common named-block case, and may have more than one when the source
// is malformed — the parser accepts any count; semantic validation of
// exactly how many are required happens in internal/runbook.
type Block struct {
	Keyword     string
	KeywordSpan origin.Span
	Labels      []string
	LabelSpans  []origin.Span
	Body        *Body
	FullSpan    origin.Span
}

func (b *Block) itemSpan() origin.Span { return b.FullSpan }

// ExprKind tags the variant of an unevaluated expression.
type ExprKind int

const (
	ExprString ExprKind = iota
	ExprNumber
	ExprBool
	ExprNull
	ExprArray
	ExprObject
	ExprIdent
)

// ObjectField is one `name = expr` entry inside an object literal,
// kept in declaration order for the canonical printer.
type ObjectField struct {
	Name  string
	Value Expr
}

// Expr is an unevaluated expression as written in source: a literal,
// an array/object composite, or a (possibly dotted) variable
// reference. internal/value.Evaluate resolves ExprIdent against a
// variable Context; the other kinds convert directly to value.Value.
type Expr struct {
	Kind ExprKind
	Span origin.Span

	Str    string // ExprString
	Num    int64  // ExprNumber
	Bool   bool   // ExprBool
	Array  []Expr // ExprArray
	Object []ObjectField // ExprObject
	Ident  string // ExprIdent, dotted path joined with "."
}
