package checker

import (
	"strings"
	"testing"

	"meadoc/internal/config"
)

func check(t *testing.T, source string, cfg *config.Config) []Issue {
	t.Helper()
	if cfg == nil {
		c := config.Default()
		cfg = &c
	}
	issues, err := CheckSource("test.py", []byte(source), cfg)
	if err != nil {
		t.Fatalf("CheckSource failed: %v", err)
	}
	return issues
}

func codes(issues []Issue) []Code {
	out := make([]Code, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Code)
	}
	return out
}

func TestMissingDocstring(t *testing.T) {
	issues := check(t, "def f(x):\n    return x\n", nil)

	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %+v", issues)
	}
	if issues[0].Code != CodeMissing {
		t.Errorf("Expected %s, got %s", CodeMissing, issues[0].Code)
	}
	if issues[0].Line != 1 || issues[0].Column != 1 {
		t.Errorf("Unexpected position: %d:%d", issues[0].Line, issues[0].Column)
	}
	if !strings.Contains(issues[0].Message, "'f'") {
		t.Errorf("Message should name the function: %q", issues[0].Message)
	}
}

func TestUpToDateDocstring(t *testing.T) {
	source := `def f(x: int, y: int) -> int:
    """Add x and y.

    arguments:
        ` + "`x: int`" + ` first
        ` + "`y: int`" + ` second
    """
    return x + y
`
	if issues := check(t, source, nil); len(issues) != 0 {
		t.Errorf("Expected no issues, got %+v", issues)
	}
}

func TestOutdatedParameterMismatch(t *testing.T) {
	// Docstring documents one argument; the signature has two.
	source := `def f(x: int, y: int) -> int:
    """Add.

    arguments:
        ` + "`x: int`" + ` first
    """
    return x + y
`
	issues := check(t, source, nil)
	if len(issues) != 1 || issues[0].Code != CodeOutdated {
		t.Fatalf("Expected one %s, got %+v", CodeOutdated, issues)
	}
	if !strings.Contains(issues[0].Message, "parameter mismatch") {
		t.Errorf("Unexpected message: %q", issues[0].Message)
	}
}

func TestMalformedDocstring(t *testing.T) {
	source := "def f():\n    \"\"\"   \"\"\"\n    return 1\n"
	issues := check(t, source, nil)

	if len(issues) != 1 || issues[0].Code != CodeMalformed {
		t.Fatalf("Expected one %s, got %+v", CodeMalformed, issues)
	}
}

func TestClassChecks(t *testing.T) {
	source := `class Account:
    """An account.

    attributes:
        ` + "`balance: int`" + ` funds
    """

    balance: int = 0
    owner = "nobody"

    def deposit(self, amount):
        pass
`
	issues := check(t, source, nil)

	// Two attributes declared, one documented: outdated. The method has no
	// docstring: missing.
	got := codes(issues)
	if len(got) != 2 || got[0] != CodeOutdated || got[1] != CodeMissing {
		t.Errorf("Expected [outdated, missing], got %v (%+v)", got, issues)
	}
}

func TestMethodsCheckedWhenClassDocumented(t *testing.T) {
	source := `class C:
    """A class."""

    def m(self):
        pass
`
	issues := check(t, source, nil)
	if len(issues) != 1 || issues[0].Code != CodeMissing {
		t.Fatalf("Expected the method to be flagged, got %+v", issues)
	}
	if !strings.Contains(issues[0].Message, "'m'") {
		t.Errorf("Unexpected message: %q", issues[0].Message)
	}
}

func TestIgnoreCodes(t *testing.T) {
	source := "def f():\n    return 1\n"

	cfg := config.Default()
	cfg.ExtendIgnore = []string{string(CodeMissing)}
	if issues := check(t, source, &cfg); len(issues) != 0 {
		t.Errorf("Expected suppressed issue, got %+v", issues)
	}
}

func TestIgnoreCodesAreIndependent(t *testing.T) {
	// f is undocumented, g has a blank docstring. Suppressing MDW001 must
	// leave the MDW003 for g in place.
	source := "def f():\n    return 1\n\ndef g():\n    \"\"\" \"\"\"\n    return 2\n"

	cfg := config.Default()
	cfg.ExtendIgnore = []string{string(CodeMissing)}

	issues := check(t, source, &cfg)
	if len(issues) != 1 || issues[0].Code != CodeMalformed {
		t.Errorf("Expected only the malformed issue, got %+v", issues)
	}
}

func TestSyntaxErrorSingleIssue(t *testing.T) {
	issues := check(t, "def broken(:\n    pass\n", nil)

	if len(issues) != 1 || issues[0].Code != CodeMalformed {
		t.Fatalf("Expected a single malformed issue, got %+v", issues)
	}
	if issues[0].Message != "file contains a syntax error" {
		t.Errorf("Unexpected message: %q", issues[0].Message)
	}
}

func TestIssuesSortedByPosition(t *testing.T) {
	source := `def a():
    return 1

def b():
    return 2
`
	issues := check(t, source, nil)
	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues, got %+v", issues)
	}
	if issues[0].Line >= issues[1].Line {
		t.Errorf("Issues not ordered by line: %+v", issues)
	}
}

func TestIssueFormat(t *testing.T) {
	issue := Issue{Code: CodeMissing, Line: 3, Column: 1, Message: "function 'f' has no docstring"}
	got := issue.Format("pkg/mod.py")
	want := "pkg/mod.py:3:1: MDW001: function 'f' has no docstring"
	if got != want {
		t.Errorf("Format mismatch:\n%q\nwant\n%q", got, want)
	}
}
