package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// renderAnnotation reconstructs the source text of a type annotation,
// default value, or base-class expression. Supported shapes: bare names,
// subscripted generics (Base[Arg]), two-way unions (Left | Right), dotted
// attribute access (Outer.Inner), tuples (comma-joined), and literal
// constants via their literal text. Anything else renders as empty text.
func renderAnnotation(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "type":
		// Annotation wrapper node; render its content.
		return renderAnnotation(node.NamedChild(0), source)

	case "identifier":
		return nodeText(node, source)

	case "subscript":
		value := renderAnnotation(node.ChildByFieldName("value"), source)
		args := make([]string, 0, node.NamedChildCount())
		valueNode := node.ChildByFieldName("value")
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if valueNode != nil && child.StartByte() == valueNode.StartByte() {
				continue
			}
			args = append(args, renderAnnotation(child, source))
		}
		return value + "[" + strings.Join(args, ", ") + "]"

	case "binary_operator":
		if op := node.ChildByFieldName("operator"); op != nil && nodeText(op, source) == "|" {
			left := renderAnnotation(node.ChildByFieldName("left"), source)
			right := renderAnnotation(node.ChildByFieldName("right"), source)
			return left + " | " + right
		}
		return ""

	case "attribute":
		object := renderAnnotation(node.ChildByFieldName("object"), source)
		attr := nodeText(node.ChildByFieldName("attribute"), source)
		return object + "." + attr

	case "tuple":
		parts := make([]string, 0, node.NamedChildCount())
		for i := uint(0); i < node.NamedChildCount(); i++ {
			parts = append(parts, renderAnnotation(node.NamedChild(i), source))
		}
		return strings.Join(parts, ", ")

	case "string", "integer", "float", "true", "false", "none", "ellipsis":
		return nodeText(node, source)
	}

	return ""
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}
