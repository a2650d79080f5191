// Package formatter synthesizes missing docstrings and splices them into
// source files without disturbing surrounding text.
package formatter

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"meadoc/internal/config"
	"meadoc/internal/docstring"
	"meadoc/internal/parser"
)

// patch is one pending splice against the original line numbering.
type patch struct {
	span   Span
	indent string
	text   string
}

// FormatFile rewrites path in place and reports whether it changed.
func FormatFile(path string, cfg *config.Config, fixMalformed bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	formatted, changed, err := FormatSource(path, content, cfg, fixMalformed)
	if err != nil || !changed {
		return false, err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, formatted, mode); err != nil {
		return false, err
	}
	return true, nil
}

// FormatSource synthesizes docstrings for every declaration that lacks one
// (and, with fixMalformed, replaces malformed ones) and splices them in.
// All patches are computed against the original line numbering and applied
// bottom-up so earlier spans stay valid.
func FormatSource(path string, source []byte, cfg *config.Config, fixMalformed bool) ([]byte, bool, error) {
	file, err := parser.New().Parse(path, source)
	if err != nil {
		return source, false, err
	}

	var patches []patch
	lines := strings.Split(string(source), "\n")

	addFunction := func(sig *parser.FunctionSignature) {
		if text, ok := newDocstring(sig.Docstring, fixMalformed, func() string {
			return FunctionDocstring(sig, cfg)
		}); ok {
			patches = append(patches, patch{
				span:   docstringSpan(sig.Docstring),
				indent: docstringIndent(lines, sig.Docstring),
				text:   text,
			})
		}
	}

	for i := range file.Functions {
		addFunction(&file.Functions[i])
	}
	for i := range file.Classes {
		class := &file.Classes[i]
		if text, ok := newDocstring(class.Docstring, fixMalformed, func() string {
			return ClassDocstring(class, cfg)
		}); ok {
			patches = append(patches, patch{
				span:   docstringSpan(class.Docstring),
				indent: docstringIndent(lines, class.Docstring),
				text:   text,
			})
		}
		for j := range class.Methods {
			addFunction(&class.Methods[j])
		}
	}

	if len(patches) == 0 {
		return source, false, nil
	}

	sort.Slice(patches, func(a, b int) bool {
		return patches[a].span.Start > patches[b].span.Start
	})
	for _, p := range patches {
		lines = splice(lines, p.span, p.indent, p.text)
	}

	formatted := []byte(strings.Join(lines, "\n"))
	return formatted, !bytes.Equal(formatted, source), nil
}

// newDocstring decides whether a declaration needs fresh documentation text
// and synthesizes it lazily. Single-line suites are left untouched: their
// span overlaps the declaration line, so no splice can hold a docstring.
func newDocstring(info parser.DocstringInfo, fixMalformed bool, synth func() string) (string, bool) {
	switch {
	case info.Inline:
		return "", false
	case !info.Present:
		return synth(), true
	case fixMalformed && docstring.Parse(info.Text).IsMalformed:
		return synth(), true
	}
	return "", false
}
