package lint

import (
	"strings"

	"github.com/leapstack-labs/esqllint/pkg/token"
)

// SuppressMarker silences every diagnostic on the line of the comment that contains it.
const SuppressMarker = "NOSONAR"

// suppressedLines returns the lines carrying a comment with SuppressMarker.
// A block comment suppresses every line it spans.
func suppressedLines(comments []*token.Comment) map[int]bool {
	var lines map[int]bool
	for _, c := range comments {
		if c == nil || !strings.Contains(c.Text, SuppressMarker) {
			continue
		}
		if lines == nil {
			lines = make(map[int]bool)
		}
		end := c.Span.End.Line
		if c.IsLineComment() || end < c.Span.Start.Line {
			end = c.Span.Start.Line
		}
		for line := c.Span.Start.Line; line <= end; line++ {
			lines[line] = true
		}
	}
	return lines
}

// filterSuppressed drops diagnostics that start on a suppressed line.
func filterSuppressed(diags []Diagnostic, comments []*token.Comment) []Diagnostic {
	lines := suppressedLines(comments)
	if len(lines) == 0 {
		return diags
	}
	kept := diags[:0]
	for _, d := range diags {
		if !lines[d.Pos.Line] {
			kept = append(kept, d)
		}
	}
	return kept
}
