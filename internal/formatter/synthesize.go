package formatter

import (
	"strings"

	"meadoc/internal/config"
	"meadoc/internal/parser"
)

// FunctionDocstring produces well-formed dialect text for a function
// signature, using the configured placeholder for every unknown field.
func FunctionDocstring(sig *parser.FunctionSignature, cfg *config.Config) string {
	lines := []string{`"""Short description for ` + sig.Name + ".", ""}

	if len(sig.Parameters) > 0 {
		lines = append(lines, "arguments:")
		for _, param := range sig.Parameters {
			lines = append(lines, "    `"+param.Rendered+"`")
			lines = append(lines, "        "+cfg.TodocMessage)
		}
		lines = append(lines, "")
	}

	if sig.ReturnType != "" {
		lines = append(lines, "returns:")
		lines = append(lines, "    `"+sig.ReturnType+"`")
		lines = append(lines, "        "+cfg.TodocMessage)
		lines = append(lines, "")
	}

	if len(sig.Raises) > 0 {
		lines = append(lines, "raises:")
		for _, name := range sig.Raises {
			lines = append(lines, "    `"+name+"`")
			lines = append(lines, "        "+cfg.TodocMessage)
		}
		lines = append(lines, "")
	}

	return closeDocstring(lines)
}

// ClassDocstring produces dialect text for a class signature. Unannotated
// attributes fall back to a generic Any marker.
func ClassDocstring(sig *parser.ClassSignature, cfg *config.Config) string {
	lines := []string{`"""Short description for ` + sig.Name + ".", ""}

	if len(sig.Attributes) > 0 {
		lines = append(lines, "attributes:")
		for _, attr := range sig.Attributes {
			attrType := attr.Type
			if attrType == "" {
				attrType = "Any"
			}
			lines = append(lines, "    `"+attr.Name+": "+attrType+"`")
			lines = append(lines, "        "+cfg.TodocMessage)
		}
		lines = append(lines, "")
	}

	return closeDocstring(lines)
}

// closeDocstring trims trailing blank lines and appends the closing
// delimiter. A bare short description collapses to a one-line docstring.
func closeDocstring(lines []string) string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 1 {
		return lines[0] + `"""`
	}
	return strings.Join(lines, "\n") + "\n\"\"\""
}
