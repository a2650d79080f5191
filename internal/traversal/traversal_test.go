package traversal

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindPythonFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.py"))
	touch(t, filepath.Join(dir, "pkg", "b.py"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "__pycache__", "a.cpython-312.py"))
	touch(t, filepath.Join(dir, ".venv", "lib", "site.py"))

	files, err := FindPythonFiles([]string{dir}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.py" || filepath.Base(files[1]) != "b.py" {
		t.Errorf("Unexpected files: %v", files)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("Expected sorted output: %v", files)
	}
}

func TestFindPythonFilesIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "mod.py"))
	touch(t, filepath.Join(dir, "mod_test.py"))
	touch(t, filepath.Join(dir, "sub", "other_test.py"))

	files, err := FindPythonFiles([]string{dir}, []string{"*_test.py"})
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "mod.py" {
		t.Errorf("Expected only mod.py, got %v", files)
	}
}

func TestFindPythonFilesExplicitFileAndDedup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	touch(t, path)

	files, err := FindPythonFiles([]string{path, path, dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("Expected deduped single file, got %v", files)
	}
}

func TestFindPythonFilesMissingRoot(t *testing.T) {
	files, err := FindPythonFiles([]string{"/does/not/exist"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files, got %v", files)
	}
}

func TestCompilePatternsInvalid(t *testing.T) {
	if _, err := CompilePatterns([]string{"[unclosed"}); err == nil {
		t.Error("Expected an error for an invalid pattern")
	}
}

func TestShouldIgnore(t *testing.T) {
	globs, err := CompilePatterns([]string{"**/generated/**"})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{"src/app.py", false},
		{"src/__pycache__/app.py", true},
		{"a/generated/b/app.py", true},
		{"vendor/env/setup.py", true},
	}
	for _, tc := range cases {
		if got := ShouldIgnore(tc.path, globs); got != tc.want {
			t.Errorf("ShouldIgnore(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
