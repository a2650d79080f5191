package formatter

import (
	"strings"

	"meadoc/internal/parser"
)

// Span is a half-open line range [Start, End) in 0-based indexes. An empty
// span (Start == End) marks a pure insertion point.
type Span struct {
	Start int
	End   int
}

func (s Span) IsInsertion() bool { return s.Start == s.End }

// docstringSpan locates the exact line span of a declaration's docstring,
// or the empty span at the first body statement when no docstring exists.
func docstringSpan(info parser.DocstringInfo) Span {
	if info.Present {
		return Span{Start: info.StartLine - 1, End: info.EndLine}
	}
	line := info.BodyLine - 1
	return Span{Start: line, End: line}
}

// docstringIndent is the leading whitespace the spliced text must carry:
// the existing docstring's indentation, or the body indentation when
// inserting.
func docstringIndent(lines []string, info parser.DocstringInfo) string {
	if info.Present && info.StartLine-1 >= 0 && info.StartLine-1 < len(lines) {
		line := lines[info.StartLine-1]
		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}
	return strings.Repeat(" ", info.BodyCol)
}

// splice replaces span with text re-indented to indent. Every line outside
// the span is preserved byte-for-byte.
func splice(lines []string, span Span, indent, text string) []string {
	replacement := make([]string, 0, 8)
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			replacement = append(replacement, "")
			continue
		}
		replacement = append(replacement, indent+line)
	}

	out := make([]string, 0, len(lines)-(span.End-span.Start)+len(replacement))
	out = append(out, lines[:span.Start]...)
	out = append(out, replacement...)
	out = append(out, lines[span.End:]...)
	return out
}
