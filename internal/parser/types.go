package parser

// Location is a 1-based position inside a source file.
type Location struct {
	Line   int
	Column int
}

// Parameter is one declared parameter with its rendered signature text,
// e.g. "x: int = 0" or "*args".
type Parameter struct {
	Name     string
	Rendered string
}

// DocstringInfo describes the docstring attached to a declaration, or the
// place where one would be inserted when absent. Inline marks single-line
// suites (the body shares the declaration's line); their docstring span
// cannot be spliced without restructuring the statement.
type DocstringInfo struct {
	Present   bool
	Inline    bool
	Text      string // dedented docstring body, empty when absent
	StartLine int    // 1-based first line of the string literal
	EndLine   int    // 1-based last line of the string literal
	BodyLine  int    // 1-based line of the first body statement
	BodyCol   int    // 0-based column of the first body statement
}

// FunctionSignature is the extracted shape of a function or method.
type FunctionSignature struct {
	Name       string
	Parameters []Parameter
	ReturnType string
	Raises     []string
	Location   Location
	Docstring  DocstringInfo
}

// Attribute is a class attribute; Type is empty for unannotated assignments.
type Attribute struct {
	Name string
	Type string
}

// ClassSignature is the extracted shape of a class declaration.
type ClassSignature struct {
	Name       string
	Bases      []string
	Attributes []Attribute
	Methods    []FunctionSignature
	Location   Location
	Docstring  DocstringInfo
}

// File holds everything extracted from one Python source file.
type File struct {
	Path      string
	Functions []FunctionSignature
	Classes   []ClassSignature
}

// ParameterStrings returns the rendered parameter texts in declaration order.
func (f *FunctionSignature) ParameterStrings() []string {
	out := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		out = append(out, p.Rendered)
	}
	return out
}

// FindFunction returns the first function with the given name, or nil.
func (f *File) FindFunction(name string) *FunctionSignature {
	for i := range f.Functions {
		if f.Functions[i].Name == name {
			return &f.Functions[i]
		}
	}
	return nil
}

// FindClass returns the first class with the given name, or nil.
func (f *File) FindClass(name string) *ClassSignature {
	for i := range f.Classes {
		if f.Classes[i].Name == name {
			return &f.Classes[i]
		}
	}
	return nil
}

// FindMethod returns the first method with the given name, or nil.
func (c *ClassSignature) FindMethod(name string) *FunctionSignature {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}
