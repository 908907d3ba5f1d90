package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders body back to canonical source text: consistent
// 2-space indentation and one attribute per line. It does not
// reorder blocks or attributes — only whitespace is normalized,
// mirroring the original formatter's behavior.
func Format(body *Body) string {
	var b strings.Builder
	writeBody(&b, body, 0)
	return b.String()
}

func writeBody(b *strings.Builder, body *Body, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range body.Items {
		switch v := item.(type) {
		case *Attribute:
			fmt.Fprintf(b, "%s%s = %s\n", indent, v.Name, writeExpr(v.Value))
		case *Block:
			fmt.Fprintf(b, "%s%s", indent, v.Keyword)
			for _, label := range v.Labels {
				fmt.Fprintf(b, " %s", quote(label))
			}
			b.WriteString(" {\n")
			writeBody(b, v.Body, depth+1)
			fmt.Fprintf(b, "%s}\n", indent)
		}
	}
}

func writeExpr(e Expr) string {
	switch e.Kind {
	case ExprString:
		return quote(e.Str)
	case ExprNumber:
		return strconv.FormatInt(e.Num, 10)
	case ExprBool:
		if e.Bool {
			return "true"
		}
		return "false"
	case ExprNull:
		return "null"
	case ExprIdent:
		return e.Ident
	case ExprArray:
		parts := make([]string, len(e.Array))
		for i, item := range e.Array {
			parts[i] = writeExpr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ExprObject:
		parts := make([]string, len(e.Object))
		for i, field := range e.Object {
			parts[i] = fmt.Sprintf("%s = %s", field.Name, writeExpr(field.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return ""
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
