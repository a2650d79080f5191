// Package checker detects drift between extracted signatures and the
// docstrings that describe them.
package checker

import (
	"errors"
	"os"

	"meadoc/internal/config"
	"meadoc/internal/docstring"
	"meadoc/internal/parser"
)

// CheckFile lints one Python file and returns its issues sorted by
// (line, column).
func CheckFile(path string, cfg *config.Config) ([]Issue, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return CheckSource(path, content, cfg)
}

// CheckSource lints source that may not exist on disk. A file that cannot
// be structurally modeled short-circuits to a single MALFORMED issue at the
// failure position; no partial results are returned for it.
func CheckSource(path string, source []byte, cfg *config.Config) ([]Issue, error) {
	file, err := parser.New().Parse(path, source)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			return []Issue{{
				Code:    CodeMalformed,
				Line:    syntaxErr.Line,
				Column:  syntaxErr.Column,
				Message: "file contains a syntax error",
			}}, nil
		}
		return nil, err
	}
	return Check(file, cfg), nil
}

// Check runs the drift checks over an already-extracted file model.
func Check(file *parser.File, cfg *config.Config) []Issue {
	var issues []Issue

	for i := range file.Functions {
		issues = append(issues, checkFunction(&file.Functions[i], file.Functions, cfg)...)
	}
	for i := range file.Classes {
		issues = append(issues, checkClass(&file.Classes[i], cfg)...)
	}

	sortIssues(issues)
	return issues
}

// checkFunction applies the three-way check to one function or method.
// siblings is the signature list the OUTDATED lookup resolves against:
// the file's functions for top-level declarations, the class's methods
// for methods.
func checkFunction(sig *parser.FunctionSignature, siblings []parser.FunctionSignature, cfg *config.Config) []Issue {
	var issues []Issue

	if !sig.Docstring.Present {
		if !cfg.Ignores(string(CodeMissing)) {
			issues = append(issues, Issue{
				Code:    CodeMissing,
				Line:    sig.Location.Line,
				Column:  sig.Location.Column,
				Message: "function '" + sig.Name + "' has no docstring",
			})
		}
		return issues
	}

	parsed := docstring.Parse(sig.Docstring.Text)

	if parsed.IsMalformed && !cfg.Ignores(string(CodeMalformed)) {
		issues = append(issues, Issue{
			Code:    CodeMalformed,
			Line:    sig.Location.Line,
			Column:  sig.Location.Column,
			Message: "function '" + sig.Name + "' has a malformed docstring",
		})
	}

	if !cfg.Ignores(string(CodeOutdated)) {
		if found := findFunction(siblings, sig.Name); found != nil {
			if len(found.Parameters) != len(parsed.Arguments) {
				issues = append(issues, Issue{
					Code:    CodeOutdated,
					Line:    sig.Location.Line,
					Column:  sig.Location.Column,
					Message: "function '" + sig.Name + "' is outdated: parameter mismatch",
				})
			}
		}
	}

	return issues
}

func checkClass(sig *parser.ClassSignature, cfg *config.Config) []Issue {
	var issues []Issue

	if !sig.Docstring.Present {
		if !cfg.Ignores(string(CodeMissing)) {
			issues = append(issues, Issue{
				Code:    CodeMissing,
				Line:    sig.Location.Line,
				Column:  sig.Location.Column,
				Message: "class '" + sig.Name + "' has no docstring",
			})
		}
	} else {
		parsed := docstring.Parse(sig.Docstring.Text)

		if parsed.IsMalformed && !cfg.Ignores(string(CodeMalformed)) {
			issues = append(issues, Issue{
				Code:    CodeMalformed,
				Line:    sig.Location.Line,
				Column:  sig.Location.Column,
				Message: "class '" + sig.Name + "' has a malformed docstring",
			})
		}

		if !cfg.Ignores(string(CodeOutdated)) {
			if len(sig.Attributes) != len(parsed.Attributes) {
				issues = append(issues, Issue{
					Code:    CodeOutdated,
					Line:    sig.Location.Line,
					Column:  sig.Location.Column,
					Message: "class '" + sig.Name + "' is outdated: attribute mismatch",
				})
			}
		}
	}

	for i := range sig.Methods {
		issues = append(issues, checkFunction(&sig.Methods[i], sig.Methods, cfg)...)
	}

	return issues
}

func findFunction(list []parser.FunctionSignature, name string) *parser.FunctionSignature {
	for i := range list {
		if list[i].Name == name {
			return &list[i]
		}
	}
	return nil
}
