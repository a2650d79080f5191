package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// pythonExtractor walks a parsed module and collects declaration facts.
// Only module-level functions and classes (plus class methods) are
// extracted; nested functions are not part of the signature model.
type pythonExtractor struct {
	source []byte
}

func (e *pythonExtractor) extractModule(root *sitter.Node, file *File) {
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := unwrapDecorated(root.NamedChild(i))
		switch node.Kind() {
		case "function_definition":
			file.Functions = append(file.Functions, e.extractFunction(node))
		case "class_definition":
			file.Classes = append(file.Classes, e.extractClass(node))
		}
	}
}

func unwrapDecorated(node *sitter.Node) *sitter.Node {
	if node.Kind() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

func (e *pythonExtractor) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(e.source[node.StartByte():node.EndByte()])
}

func (e *pythonExtractor) location(node *sitter.Node) Location {
	return Location{
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

func (e *pythonExtractor) extractFunction(node *sitter.Node) FunctionSignature {
	sig := FunctionSignature{
		Name:     e.text(node.ChildByFieldName("name")),
		Location: e.location(node),
	}

	sig.Parameters = e.extractParameters(node.ChildByFieldName("parameters"))
	sig.ReturnType = renderAnnotation(node.ChildByFieldName("return_type"), e.source)
	sig.Raises = e.extractRaises(node.ChildByFieldName("body"))
	sig.Docstring = e.docstringInfo(node)
	return sig
}

// extractParameters renders each parameter and orders them: positional-only,
// positional-or-keyword, keyword-only, *args, **kwargs.
func (e *pythonExtractor) extractParameters(params *sitter.Node) []Parameter {
	if params == nil {
		return nil
	}

	var posonly, regular, kwonly []Parameter
	var vararg, kwarg *Parameter
	afterStar := false

	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		switch child.Kind() {
		case "(", ")", ",":
			continue
		case "*", "keyword_separator":
			afterStar = true
			continue
		case "/", "positional_separator":
			posonly = append(posonly, regular...)
			regular = nil
			continue
		}

		param, kind := e.parameter(child)
		if param.Name == "" {
			continue
		}
		switch kind {
		case paramVararg:
			p := param
			vararg = &p
			afterStar = true
		case paramKwarg:
			p := param
			kwarg = &p
		default:
			if afterStar {
				kwonly = append(kwonly, param)
			} else {
				regular = append(regular, param)
			}
		}
	}

	out := make([]Parameter, 0, len(posonly)+len(regular)+len(kwonly)+2)
	out = append(out, posonly...)
	out = append(out, regular...)
	out = append(out, kwonly...)
	if vararg != nil {
		out = append(out, *vararg)
	}
	if kwarg != nil {
		out = append(out, *kwarg)
	}
	return dedupeParameters(out)
}

type paramKind int

const (
	paramPlain paramKind = iota
	paramVararg
	paramKwarg
)

// parameter renders one parameter node as "name", "name: ann",
// "name = default", or "name: ann = default", with a leading * or **
// for the variadic forms.
func (e *pythonExtractor) parameter(node *sitter.Node) (Parameter, paramKind) {
	switch node.Kind() {
	case "identifier":
		name := e.text(node)
		return Parameter{Name: name, Rendered: name}, paramPlain

	case "list_splat_pattern":
		name := e.splatName(node)
		return Parameter{Name: name, Rendered: "*" + name}, paramVararg

	case "dictionary_splat_pattern":
		name := e.splatName(node)
		return Parameter{Name: name, Rendered: "**" + name}, paramKwarg

	case "typed_parameter":
		inner := node.NamedChild(0)
		annotation := renderAnnotation(node.ChildByFieldName("type"), e.source)
		param, kind := e.parameter(inner)
		if annotation != "" {
			param.Rendered += ": " + annotation
		}
		return param, kind

	case "default_parameter", "typed_default_parameter":
		name := e.text(node.ChildByFieldName("name"))
		rendered := name
		if annotation := renderAnnotation(node.ChildByFieldName("type"), e.source); annotation != "" {
			rendered += ": " + annotation
		}
		rendered += " = " + renderAnnotation(node.ChildByFieldName("value"), e.source)
		return Parameter{Name: name, Rendered: rendered}, paramPlain
	}

	return Parameter{}, paramPlain
}

func (e *pythonExtractor) splatName(node *sitter.Node) string {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child.Kind() == "identifier" {
			return e.text(child)
		}
	}
	return ""
}

// dedupeParameters collapses parameters sharing a name into one entry,
// keeping first-seen order. Duplicate names cannot occur in valid Python;
// this mirrors the name-keyed mapping the rest of the system relies on.
func dedupeParameters(params []Parameter) []Parameter {
	index := make(map[string]int, len(params))
	out := params[:0]
	for _, p := range params {
		if at, ok := index[p.Name]; ok {
			out[at] = p
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}

// extractRaises collects raised error-type names from raise statements in
// the body: bare names, calls of bare names, and calls of dotted names.
// Duplicates are suppressed, first-seen order kept.
func (e *pythonExtractor) extractRaises(body *sitter.Node) []string {
	var raises []string
	seen := make(map[string]bool)

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Kind() == "raise_statement" {
			if name := e.raiseTarget(n); name != "" && !seen[name] {
				seen[name] = true
				raises = append(raises, name)
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(body)
	return raises
}

func (e *pythonExtractor) raiseTarget(raise *sitter.Node) string {
	exc := raise.NamedChild(0)
	if exc == nil {
		return ""
	}
	switch exc.Kind() {
	case "identifier":
		return e.text(exc)
	case "call":
		fn := exc.ChildByFieldName("function")
		if fn == nil {
			return ""
		}
		switch fn.Kind() {
		case "identifier":
			return e.text(fn)
		case "attribute":
			return renderAnnotation(fn, e.source)
		}
	}
	return ""
}

func (e *pythonExtractor) extractClass(node *sitter.Node) ClassSignature {
	sig := ClassSignature{
		Name:     e.text(node.ChildByFieldName("name")),
		Location: e.location(node),
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.NamedChildCount(); i++ {
			if base := renderAnnotation(supers.NamedChild(i), e.source); base != "" {
				sig.Bases = append(sig.Bases, base)
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		for i := uint(0); i < body.NamedChildCount(); i++ {
			stmt := unwrapDecorated(body.NamedChild(i))
			switch stmt.Kind() {
			case "expression_statement":
				e.extractAttribute(stmt, &sig)
			case "function_definition":
				sig.Methods = append(sig.Methods, e.extractFunction(stmt))
			}
		}
	}

	sig.Attributes = dedupeAttributes(sig.Attributes)
	sig.Docstring = e.docstringInfo(node)
	return sig
}

// extractAttribute records class-level assignments: annotated ones carry
// their rendered type, plain ones an empty type.
func (e *pythonExtractor) extractAttribute(stmt *sitter.Node, sig *ClassSignature) {
	assign := stmt.NamedChild(0)
	if assign == nil || assign.Kind() != "assignment" {
		return
	}
	left := assign.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}
	sig.Attributes = append(sig.Attributes, Attribute{
		Name: e.text(left),
		Type: renderAnnotation(assign.ChildByFieldName("type"), e.source),
	})
}

func dedupeAttributes(attrs []Attribute) []Attribute {
	index := make(map[string]int, len(attrs))
	out := attrs[:0]
	for _, a := range attrs {
		if at, ok := index[a.Name]; ok {
			out[at] = Attribute{Name: a.Name, Type: a.Type}
			continue
		}
		index[a.Name] = len(out)
		out = append(out, a)
	}
	return out
}

// docstringInfo finds the docstring statement of a function or class body,
// or the position where one would be inserted.
func (e *pythonExtractor) docstringInfo(decl *sitter.Node) DocstringInfo {
	info := DocstringInfo{
		BodyLine: int(decl.StartPosition().Row) + 2,
		BodyCol:  int(decl.StartPosition().Column) + 4,
	}

	body := decl.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return info
	}

	first := body.NamedChild(0)
	info.BodyLine = int(first.StartPosition().Row) + 1
	info.BodyCol = int(first.StartPosition().Column)
	info.Inline = first.StartPosition().Row == decl.StartPosition().Row

	if first.Kind() != "expression_statement" {
		return info
	}
	str := first.NamedChild(0)
	if str == nil || str.Kind() != "string" {
		return info
	}

	info.Present = true
	info.StartLine = int(str.StartPosition().Row) + 1
	info.EndLine = int(str.EndPosition().Row) + 1
	info.Text = dedentDocstring(e.stringBody(str))
	return info
}

// stringBody returns the text between a string literal's delimiters.
func (e *pythonExtractor) stringBody(str *sitter.Node) string {
	var b strings.Builder
	for i := uint(0); i < str.NamedChildCount(); i++ {
		if child := str.NamedChild(i); child.Kind() == "string_content" {
			b.WriteString(e.text(child))
		}
	}
	if b.Len() > 0 {
		return b.String()
	}

	// Fallback for bindings without string_content nodes: trim delimiters.
	raw := e.text(str)
	raw = strings.TrimLeft(raw, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	return raw
}

// dedentDocstring normalizes a docstring body the way Python presents it:
// the first line is stripped, the common indentation margin is removed from
// the remaining lines, and leading/trailing blank lines are dropped.
func dedentDocstring(s string) string {
	lines := strings.Split(s, "\n")
	lines[0] = strings.TrimSpace(lines[0])

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " \t")
			}
		}
	}

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
