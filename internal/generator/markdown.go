// Package generator renders a markdown API reference from extracted
// signatures, with a table of contents and configurable type links.
package generator

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"meadoc/internal/config"
	"meadoc/internal/parser"
)

var paramTypePattern = regexp.MustCompile(`:\s*(.+?)(?:\s*=|$)`)

// Generate renders the reference for the given files. Names are filtered
// by pattern: a glob by default, or a regular expression when the pattern
// starts with "/". Files that fail to parse are skipped with a warning.
func Generate(files []string, cfg *config.Config, pattern string) (string, error) {
	match, err := compilePattern(pattern)
	if err != nil {
		return "", err
	}

	parsed := make([]*parser.File, 0, len(files))
	p := parser.New()
	for _, path := range files {
		file, err := p.ParseFile(path)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			continue
		}
		parsed = append(parsed, file)
	}

	lines := []string{"## API Reference", ""}

	var toc []string
	for _, file := range parsed {
		for i := range file.Classes {
			if name := file.Classes[i].Name; match(name) {
				toc = append(toc, fmt.Sprintf("- [class %s](#class-%s)", name, strings.ToLower(name)))
			}
		}
		for i := range file.Functions {
			if name := file.Functions[i].Name; match(name) {
				toc = append(toc, fmt.Sprintf("- [function %s](#def-%s)", name, strings.ToLower(name)))
			}
		}
	}
	if len(toc) > 0 {
		lines = append(lines, toc...)
		lines = append(lines, "")
	}

	for _, file := range parsed {
		for i := range file.Classes {
			if match(file.Classes[i].Name) {
				lines = append(lines, classMarkdown(&file.Classes[i], cfg)...)
				lines = append(lines, "")
			}
		}
		for i := range file.Functions {
			if match(file.Functions[i].Name) {
				lines = append(lines, functionMarkdown(&file.Functions[i], cfg)...)
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

// compilePattern returns a name matcher. An empty pattern matches
// everything; a "/"-prefixed pattern is a regular expression anchored at
// the start of the name; anything else is a glob.
func compilePattern(pattern string) (func(string) bool, error) {
	if pattern == "" {
		return func(string) bool { return true }, nil
	}
	if rest, ok := strings.CutPrefix(pattern, "/"); ok {
		re, err := regexp.Compile("^(?:" + rest + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid match regexp %q: %w", rest, err)
		}
		return re.MatchString, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid match pattern %q: %w", pattern, err)
	}
	return g.Match, nil
}

func classMarkdown(class *parser.ClassSignature, cfg *config.Config) []string {
	lines := []string{"### class " + class.Name, "", shortDescription(class.Docstring), ""}

	if len(class.Attributes) > 0 {
		lines = append(lines, "- attributes:")
		for _, attr := range class.Attributes {
			attrType := attr.Type
			if attrType == "" {
				attrType = "Any"
			}
			lines = append(lines, "  - "+attr.Name+": "+linkedType(attrType, cfg))
		}
		lines = append(lines, "")
	}

	if len(class.Methods) > 0 {
		lines = append(lines, "- methods:")
		for _, method := range class.Methods {
			lines = append(lines, fmt.Sprintf("  - [%s](#def-%s)", method.Name, strings.ToLower(method.Name)))
		}
	}

	return lines
}

func functionMarkdown(fn *parser.FunctionSignature, cfg *config.Config) []string {
	lines := []string{"### def " + fn.Name, "", shortDescription(fn.Docstring), ""}

	if len(fn.Parameters) > 0 {
		lines = append(lines, "- arguments:")
		for _, param := range fn.Parameters {
			lines = append(lines, "  - "+param.Name+": "+linkedType(paramType(param.Rendered), cfg))
		}
		lines = append(lines, "")
	}

	if fn.ReturnType != "" {
		lines = append(lines, "- returns: "+linkedType(fn.ReturnType, cfg), "")
	}

	if len(fn.Raises) > 0 {
		lines = append(lines, "- raises:")
		for _, name := range fn.Raises {
			lines = append(lines, "  - "+linkedType(name, cfg))
		}
		lines = append(lines, "")
	}

	return lines
}

func shortDescription(info parser.DocstringInfo) string {
	if info.Present {
		if first := strings.TrimSpace(strings.SplitN(info.Text, "\n", 2)[0]); first != "" {
			return first
		}
	}
	return "Short description."
}

// paramType pulls the annotation out of a rendered parameter string,
// falling back to a generic Any marker for unannotated parameters.
func paramType(rendered string) string {
	if m := paramTypePattern.FindStringSubmatch(rendered); m != nil {
		return m[1]
	}
	return "Any"
}

// linkedType renders a type as a markdown link when the configured link
// table holds a matching substring, and as inline code otherwise. Patterns
// are tried in sorted order so the same input always links the same way.
func linkedType(typeText string, cfg *config.Config) string {
	patterns := make([]string, 0, len(cfg.Links))
	for pattern := range cfg.Links {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		if strings.Contains(typeText, pattern) {
			return fmt.Sprintf("[`%s`](%s)", typeText, cfg.Links[pattern])
		}
	}
	return "`" + typeText + "`"
}
