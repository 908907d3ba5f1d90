// Package fmtdiff renders the unified diff `tiron fmt --diff` prints
// instead of rewriting a runbook file in place.
package fmtdiff

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Render returns a unified diff between a file's original content
// and its canonically formatted rewrite, labelled with path. It
// returns "" when formatting would not change the file. Diffs longer
// than maxDiffLines are truncated with a marker rather than dumped in
// full to the terminal.
func Render(path string, original, formatted []byte) string {
	if bytes.Equal(original, formatted) {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(original), string(formatted), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var buf bytes.Buffer
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(&buf, "--- %s\t%s\n", path, timestamp)
	fmt.Fprintf(&buf, "+++ %s (formatted)\t%s\n", path, timestamp)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", len(strings.Split(string(original), "\n")), len(strings.Split(string(formatted), "\n")))

	for _, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(d.Text, "\n") {
			lines = lines[:len(lines)-1]
		}

		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range lines {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		return strings.Join(lines[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return result
}
