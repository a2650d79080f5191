package checker

import (
	"fmt"
	"sort"
)

// Code is a stable, user-facing issue code.
type Code string

const (
	CodeMissing   Code = "MDW001" // no docstring present
	CodeOutdated  Code = "MDW002" // docstring disagrees with the signature
	CodeMalformed Code = "MDW003" // docstring or source is structurally invalid
)

// Issue is one finding for a file, positioned at the owning declaration.
type Issue struct {
	Code    Code
	Line    int
	Column  int
	Message string
}

// Format renders an issue as "<path>:<line>:<column>: <CODE>: <message>".
func (i Issue) Format(path string) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", path, i.Line, i.Column, i.Code, i.Message)
}

// sortIssues orders issues by (line, column) ascending.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Line != issues[b].Line {
			return issues[a].Line < issues[b].Line
		}
		return issues[a].Column < issues[b].Column
	})
}
