// Package origin carries the source text behind a loaded runbook and
// renders byte-offset spans into line/column diagnostics.
package origin

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Origin keeps the working directory, path, and raw text of one loaded
// runbook file so that later errors can recover line/column information
// from a byte offset alone.
type Origin struct {
	Cwd  string
	Path string
	Data string
}

// New returns an Origin for a file already read into data.
func New(cwd, path, data string) *Origin {
	return &Origin{Cwd: cwd, Path: path, Data: data}
}

// Span is a half-open byte range into an Origin's Data.
type Span struct {
	Start int
	End   int
}

// Location is the resolved line/column form of a Span.
type Location struct {
	Path        string
	Line        int
	StartCol    int
	EndCol      int
	LineContent string
}

// Resolve converts a byte span into a Location, recovering the
// containing line and 0-based start/end columns within it.
func (o *Origin) Resolve(span Span) Location {
	data := o.Data

	lineBegin := 0
	if span.Start <= len(data) {
		if idx := strings.LastIndexByte(data[:span.Start], '\n'); idx >= 0 {
			lineBegin = idx + 1
		}
	}

	rest := data[lineBegin:]
	lineContent := rest
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		lineContent = rest[:idx]
	}

	line := 1 + strings.Count(data[:span.Start], "\n")
	startCol := span.Start - lineBegin
	endCol := startCol + (span.End - span.Start)

	return Location{
		Path:        o.Path,
		Line:        line,
		StartCol:    startCol,
		EndCol:      endCol,
		LineContent: lineContent,
	}
}

// Render formats a message anchored at span in the
// "Error: <message>\n  --> <path>:<line>:<col>\n  ..." shape used
// throughout diagnostics.
func (o *Origin) Render(message string, span *Span) string {
	if span == nil {
		return fmt.Sprintf("Error: %s", message)
	}

	loc := o.Resolve(*span)
	caretLen := loc.EndCol - loc.StartCol
	if caretLen < 1 {
		caretLen = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", message)
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", filepath.ToSlash(loc.Path), loc.Line, loc.StartCol+1)
	fmt.Fprintf(&b, "   |\n")
	fmt.Fprintf(&b, "%3d| %s\n", loc.Line, loc.LineContent)
	fmt.Fprintf(&b, "   | %s%s\n", strings.Repeat(" ", loc.StartCol), strings.Repeat("^", caretLen))

	return b.String()
}

// Rebase re-anchors a span reported against an imported origin at the
// span of the `use` label that pulled it in. innerMessage is returned
// unchanged; it names the inner file's location only if the caller
// already put it there.
func Rebase(importSpan Span, innerMessage string) (string, Span) {
	return innerMessage, importSpan
}
