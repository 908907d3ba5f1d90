package parser

import (
	"fmt"

	"github.com/tiron-sh/tiron/internal/lexer"
	"github.com/tiron-sh/tiron/internal/origin"
)

// SyntaxError is returned by Parse for malformed token sequences; the
// loader wraps it into a pkg/errors.ConfigError carrying the origin.
type SyntaxError struct {
	Message string
	Span    origin.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Message, e.Span.Start)
}

// Parser is a recursive-descent parser over a token stream, mirroring
// the Parser{tokens, pos, errors} shape used by hand-rolled DSL
// front ends: one token of lookahead, an explicit position cursor, no
// backtracking.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse tokenizes and parses a full runbook source file into a Body.
func Parse(input string) (*Body, error) {
	p := &Parser{tokens: lexer.TokensFrom(input)}
	return p.parseBody(false)
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) atEnd() bool       { return p.cur().Type == lexer.EOF }
func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) skipSeparators() {
	for p.cur().Type == lexer.LINEBRK || p.cur().Type == lexer.SEMI {
		p.advance()
	}
}

// parseBody reads items until RBRACE (nested) or EOF (top-level).
func (p *Parser) parseBody(nested bool) (*Body, error) {
	body := &Body{}
	for {
		p.skipSeparators()
		if p.atEnd() {
			if nested {
				return nil, &SyntaxError{Message: "unexpected end of file, expected }", Span: spanOf(p.cur())}
			}
			return body, nil
		}
		if nested && p.cur().Type == lexer.RBRACE {
			p.advance()
			return body, nil
		}

		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		body.Items = append(body.Items, item)
	}
}

func (p *Parser) parseItem() (Item, error) {
	nameTok := p.cur()
	if nameTok.Type != lexer.IDENT {
		return nil, &SyntaxError{Message: fmt.Sprintf("expected identifier, got %s", nameTok.Type), Span: spanOf(nameTok)}
	}
	p.advance()

	switch p.cur().Type {
	case lexer.EQUALS:
		return p.parseAttribute(nameTok)
	case lexer.STRING, lexer.LBRACE:
		return p.parseBlock(nameTok)
	default:
		return nil, &SyntaxError{
			Message: fmt.Sprintf("expected '=' or block body after %q, got %s", nameTok.Literal, p.cur().Type),
			Span:    spanOf(p.cur()),
		}
	}
}

func (p *Parser) parseAttribute(nameTok lexer.Token) (*Attribute, error) {
	p.advance() // consume '='
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Attribute{
		Name:     nameTok.Literal,
		NameSpan: spanOf(nameTok),
		Value:    value,
		FullSpan: origin.Span{Start: nameTok.Start, End: value.Span.End},
	}, nil
}

func (p *Parser) parseBlock(keywordTok lexer.Token) (*Block, error) {
	var labels []string
	var labelSpans []origin.Span
	for p.cur().Type == lexer.STRING {
		labels = append(labels, p.cur().Literal)
		labelSpans = append(labelSpans, spanOf(p.cur()))
		p.advance()
	}

	if p.cur().Type != lexer.LBRACE {
		return nil, &SyntaxError{Message: "expected '{' to open block body", Span: spanOf(p.cur())}
	}
	p.advance() // consume '{'

	body, err := p.parseBody(true)
	if err != nil {
		return nil, err
	}

	end := p.tokens[p.pos-1].End
	return &Block{
		Keyword:     keywordTok.Literal,
		KeywordSpan: spanOf(keywordTok),
		Labels:      labels,
		LabelSpans:  labelSpans,
		Body:        body,
		FullSpan:    origin.Span{Start: keywordTok.Start, End: end},
	}, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.STRING:
		p.advance()
		return Expr{Kind: ExprString, Str: tok.Literal, Span: spanOf(tok)}, nil
	case lexer.NUMBER:
		p.advance()
		n, err := parseInt(tok.Literal)
		if err != nil {
			return Expr{}, &SyntaxError{Message: err.Error(), Span: spanOf(tok)}
		}
		return Expr{Kind: ExprNumber, Num: n, Span: spanOf(tok)}, nil
	case lexer.TRUE:
		p.advance()
		return Expr{Kind: ExprBool, Bool: true, Span: spanOf(tok)}, nil
	case lexer.FALSE:
		p.advance()
		return Expr{Kind: ExprBool, Bool: false, Span: spanOf(tok)}, nil
	case lexer.NULL:
		p.advance()
		return Expr{Kind: ExprNull, Span: spanOf(tok)}, nil
	case lexer.LBRACK:
		return p.parseArray(tok)
	case lexer.LBRACE:
		return p.parseObject(tok)
	case lexer.IDENT:
		return p.parseIdentPath(tok)
	default:
		return Expr{}, &SyntaxError{Message: fmt.Sprintf("unexpected token %s in expression", tok.Type), Span: spanOf(tok)}
	}
}

func (p *Parser) parseArray(open lexer.Token) (Expr, error) {
	p.advance() // consume '['
	var items []Expr
	for {
		p.skipSeparators()
		if p.cur().Type == lexer.RBRACK {
			break
		}
		item, err := p.parseExpr()
		if err != nil {
			return Expr{}, err
		}
		items = append(items, item)

		p.skipSeparators()
		if p.cur().Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.skipSeparators()
	if p.cur().Type != lexer.RBRACK {
		return Expr{}, &SyntaxError{Message: "expected ']' to close array", Span: spanOf(p.cur())}
	}
	close := p.cur()
	p.advance()
	return Expr{Kind: ExprArray, Array: items, Span: origin.Span{Start: open.Start, End: close.End}}, nil
}

func (p *Parser) parseObject(open lexer.Token) (Expr, error) {
	p.advance() // consume '{'
	var fields []ObjectField
	for {
		p.skipSeparators()
		if p.cur().Type == lexer.RBRACE {
			break
		}
		nameTok := p.cur()
		if nameTok.Type != lexer.IDENT {
			return Expr{}, &SyntaxError{Message: "expected field name in object literal", Span: spanOf(nameTok)}
		}
		p.advance()
		if p.cur().Type != lexer.EQUALS {
			return Expr{}, &SyntaxError{Message: "expected '=' after object field name", Span: spanOf(p.cur())}
		}
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return Expr{}, err
		}
		fields = append(fields, ObjectField{Name: nameTok.Literal, Value: value})

		p.skipSeparators()
		if p.cur().Type == lexer.COMMA {
			p.advance()
		}
	}
	close := p.cur()
	p.advance()
	return Expr{Kind: ExprObject, Object: fields, Span: origin.Span{Start: open.Start, End: close.End}}, nil
}

func (p *Parser) parseIdentPath(first lexer.Token) (Expr, error) {
	p.advance()
	path := first.Literal
	end := first.End
	for p.cur().Type == lexer.DOT {
		p.advance()
		part := p.cur()
		if part.Type != lexer.IDENT {
			return Expr{}, &SyntaxError{Message: "expected identifier after '.'", Span: spanOf(part)}
		}
		p.advance()
		path += "." + part.Literal
		end = part.End
	}
	return Expr{Kind: ExprIdent, Ident: path, Span: origin.Span{Start: first.Start, End: end}}, nil
}

func spanOf(tok lexer.Token) origin.Span {
	return origin.Span{Start: tok.Start, End: tok.End}
}

func parseInt(lit string) (int64, error) {
	var n int64
	for _, r := range lit {
		n = n*10 + int64(r-'0')
	}
	return n, nil
}
