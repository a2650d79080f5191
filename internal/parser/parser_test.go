package parser

import (
	"errors"
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) *File {
	t.Helper()
	file, err := New().Parse("test.py", []byte(source))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return file
}

func TestExtractFunction(t *testing.T) {
	code := `
def transfer(amount: int, target: str = "default") -> bool:
    """Move amount to target."""
    if amount < 0:
        raise ValueError("negative")
    return True
`
	file := parseSource(t, code)

	if len(file.Functions) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(file.Functions))
	}
	fn := file.Functions[0]

	if fn.Name != "transfer" {
		t.Errorf("Expected name transfer, got %s", fn.Name)
	}
	if fn.ReturnType != "bool" {
		t.Errorf("Expected return type bool, got %s", fn.ReturnType)
	}
	if len(fn.Raises) != 1 || fn.Raises[0] != "ValueError" {
		t.Errorf("Unexpected raises: %v", fn.Raises)
	}
	if fn.Location.Line != 2 || fn.Location.Column != 1 {
		t.Errorf("Unexpected location: %+v", fn.Location)
	}

	params := fn.ParameterStrings()
	if len(params) != 2 {
		t.Fatalf("Expected 2 parameters, got %v", params)
	}
	if params[0] != "amount: int" {
		t.Errorf("Expected 'amount: int', got %q", params[0])
	}
	if params[1] != `target: str = "default"` {
		t.Errorf("Expected annotated default, got %q", params[1])
	}
}

func TestParameterOrdering(t *testing.T) {
	code := `
def f(pos_only, /, regular, *args, kw_only=1, **kwargs):
    pass
`
	file := parseSource(t, code)
	fn := file.FindFunction("f")
	if fn == nil {
		t.Fatal("f not found")
	}

	var names []string
	for _, p := range fn.Parameters {
		names = append(names, p.Name)
	}
	expected := []string{"pos_only", "regular", "kw_only", "args", "kwargs"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected order %v, got %v", expected, names)
	}

	if fn.Parameters[3].Rendered != "*args" {
		t.Errorf("Expected *args rendering, got %q", fn.Parameters[3].Rendered)
	}
	if fn.Parameters[4].Rendered != "**kwargs" {
		t.Errorf("Expected **kwargs rendering, got %q", fn.Parameters[4].Rendered)
	}
}

func TestComplexAnnotations(t *testing.T) {
	code := `
def g(mapping: dict[str, list[int]], mode: int | None = None) -> pd.DataFrame:
    pass
`
	file := parseSource(t, code)
	fn := file.FindFunction("g")
	if fn == nil {
		t.Fatal("g not found")
	}

	params := fn.ParameterStrings()
	if params[0] != "mapping: dict[str, list[int]]" {
		t.Errorf("Unexpected subscript rendering: %q", params[0])
	}
	if params[1] != "mode: int | None = None" {
		t.Errorf("Unexpected union rendering: %q", params[1])
	}
	if fn.ReturnType != "pd.DataFrame" {
		t.Errorf("Unexpected dotted return type: %q", fn.ReturnType)
	}
}

func TestExtractClass(t *testing.T) {
	code := `
class Account(BaseModel, abc.ABC):
    """An account.

    attributes:
        ` + "`balance: int`" + ` current balance
    """

    balance: int = 0
    owner = "nobody"

    def deposit(self, amount: int) -> None:
        pass

    def withdraw(self, amount: int) -> None:
        pass
`
	file := parseSource(t, code)

	if len(file.Classes) != 1 {
		t.Fatalf("Expected 1 class, got %d", len(file.Classes))
	}
	class := file.Classes[0]

	if class.Name != "Account" {
		t.Errorf("Expected Account, got %s", class.Name)
	}
	if len(class.Bases) != 2 || class.Bases[0] != "BaseModel" || class.Bases[1] != "abc.ABC" {
		t.Errorf("Unexpected bases: %v", class.Bases)
	}

	if len(class.Attributes) != 2 {
		t.Fatalf("Expected 2 attributes, got %v", class.Attributes)
	}
	if class.Attributes[0].Name != "balance" || class.Attributes[0].Type != "int" {
		t.Errorf("Unexpected annotated attribute: %+v", class.Attributes[0])
	}
	if class.Attributes[1].Name != "owner" || class.Attributes[1].Type != "" {
		t.Errorf("Unexpected plain attribute: %+v", class.Attributes[1])
	}

	if len(class.Methods) != 2 {
		t.Fatalf("Expected 2 methods, got %d", len(class.Methods))
	}
	if class.FindMethod("deposit") == nil || class.FindMethod("withdraw") == nil {
		t.Error("Expected deposit and withdraw methods")
	}

	if !class.Docstring.Present {
		t.Error("Expected class docstring")
	}
}

func TestDecoratedDefinitions(t *testing.T) {
	code := `
@functools.cache
def cached():
    pass

@dataclass
class Point:
    x: int
    y: int
`
	file := parseSource(t, code)

	if file.FindFunction("cached") == nil {
		t.Error("Decorated function not extracted")
	}
	if file.FindClass("Point") == nil {
		t.Error("Decorated class not extracted")
	}
}

func TestNestedFunctionsSkipped(t *testing.T) {
	code := `
def outer():
    def inner():
        pass
    return inner
`
	file := parseSource(t, code)

	if len(file.Functions) != 1 || file.Functions[0].Name != "outer" {
		t.Errorf("Expected only outer at top level, got %+v", file.Functions)
	}
}

func TestDocstringInfo(t *testing.T) {
	code := `def documented():
    """Does something.

    More detail here.
    """
    return 1


def bare():
    return 2
`
	file := parseSource(t, code)

	doc := file.FindFunction("documented").Docstring
	if !doc.Present {
		t.Fatal("Expected docstring present")
	}
	if doc.StartLine != 2 || doc.EndLine != 5 {
		t.Errorf("Unexpected span: start %d end %d", doc.StartLine, doc.EndLine)
	}
	if !strings.HasPrefix(doc.Text, "Does something.") {
		t.Errorf("Unexpected text: %q", doc.Text)
	}
	if strings.Contains(doc.Text, "    More") {
		t.Errorf("Text not dedented: %q", doc.Text)
	}

	bare := file.FindFunction("bare").Docstring
	if bare.Present {
		t.Error("Expected no docstring")
	}
	if bare.BodyLine != 10 {
		t.Errorf("Expected insertion at body line 10, got %d", bare.BodyLine)
	}
	if bare.BodyCol != 4 {
		t.Errorf("Expected body column 4, got %d", bare.BodyCol)
	}
}

func TestSingleLineSuiteIsInline(t *testing.T) {
	code := `def f(): pass


class C: x = 1


def g():
    pass
`
	file := parseSource(t, code)

	if doc := file.FindFunction("f").Docstring; !doc.Inline {
		t.Error("Expected one-line def to be inline")
	}
	if doc := file.FindClass("C").Docstring; !doc.Inline {
		t.Error("Expected one-line class to be inline")
	}
	if doc := file.FindFunction("g").Docstring; doc.Inline {
		t.Error("Indented suite must not be inline")
	}
}

func TestRaisesDeduplicated(t *testing.T) {
	code := `
def h(x):
    if x < 0:
        raise ValueError("a")
    if x > 100:
        raise ValueError("b")
    raise errors.Timeout()
`
	file := parseSource(t, code)
	fn := file.FindFunction("h")

	if len(fn.Raises) != 2 {
		t.Fatalf("Expected 2 distinct raises, got %v", fn.Raises)
	}
	if fn.Raises[0] != "ValueError" || fn.Raises[1] != "errors.Timeout" {
		t.Errorf("Unexpected raises: %v", fn.Raises)
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := New().Parse("broken.py", []byte("def broken(:\n    pass\n"))
	if err == nil {
		t.Fatal("Expected a syntax error")
	}

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %T", err)
	}
	if syntaxErr.Line < 1 || syntaxErr.Column < 1 {
		t.Errorf("Expected 1-based position, got %d:%d", syntaxErr.Line, syntaxErr.Column)
	}
}
