package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// SyntaxError reports that a source file could not be structurally modeled.
// Line and Column point at the first error in the tree (1,1 when unknown).
type SyntaxError struct {
	Path   string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error", e.Path, e.Line, e.Column)
}

// Parser turns Python source files into extracted signature facts.
type Parser struct {
	lang *sitter.Language
}

func New() *Parser {
	return &Parser{lang: sitter.NewLanguage(tree_sitter_python.Language())}
}

// ParseFile reads and parses the file at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(path, content)
}

// Parse builds the structural model for source and extracts signatures.
// A file whose tree contains errors yields a *SyntaxError; no partial
// results are returned in that case.
func (p *Parser) Parse(path string, source []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &SyntaxError{Path: path, Line: 1, Column: 1}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line, col := firstErrorPosition(root)
		return nil, &SyntaxError{Path: path, Line: line, Column: col}
	}

	ex := &pythonExtractor{source: source}
	file := &File{Path: path}
	ex.extractModule(root, file)
	return file, nil
}

// firstErrorPosition walks the tree for the first ERROR or missing node.
func firstErrorPosition(root *sitter.Node) (int, int) {
	var found *sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if found != nil || n == nil {
			return
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	if found == nil {
		return 1, 1
	}
	return int(found.StartPosition().Row) + 1, int(found.StartPosition().Column) + 1
}
