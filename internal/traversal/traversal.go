// Package traversal discovers Python files under a set of roots, applying
// the fixed ignore table and user-supplied glob patterns.
package traversal

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// fixedIgnore is the process-wide table of directory names that are never
// traversed. It is not mutated after startup.
var fixedIgnore = map[string]struct{}{
	"__pycache__":   {},
	".pytest_cache": {},
	".mypy_cache":   {},
	".venv":         {},
	"venv":          {},
	"env":           {},
	"node_modules":  {},
	".git":          {},
	".tox":          {},
	"build":         {},
	"dist":          {},
}

// CompilePatterns turns ignore globs into matchers. Patterns match against
// the full (slash-separated) path, so "*_test.py" matches at any depth.
func CompilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ShouldIgnore reports whether path is excluded by the fixed table or by
// any of the compiled patterns.
func ShouldIgnore(path string, patterns []glob.Glob) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if _, ok := fixedIgnore[part]; ok {
			return true
		}
	}
	for _, g := range patterns {
		if g.Match(filepath.ToSlash(path)) {
			return true
		}
	}
	return false
}

// FindPythonFiles walks the given files and directories and returns the
// sorted, de-duplicated set of non-ignored .py files. Roots that do not
// exist are skipped silently.
func FindPythonFiles(paths []string, ignorePatterns []string) ([]string, error) {
	globs, err := CompilePatterns(ignorePatterns)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if filepath.Ext(root) == ".py" && !ShouldIgnore(root, globs) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if _, ok := fixedIgnore[d.Name()]; ok {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".py" || ShouldIgnore(path, globs) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
