package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"meadoc/internal/parser"
)

// ErrHeaderNotFound reports that the requested insertion header does not
// exist in the destination file; the write is aborted rather than guessing
// a fallback location.
var ErrHeaderNotFound = errors.New("header not found")

// WriteOutput places generated content into path. A fresh file just gets
// the content; an existing file gets it appended, or inserted directly
// below header when one is named.
func WriteOutput(path, content, header string) error {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return atomicWrite(path, content)
	}
	if err != nil {
		return fmt.Errorf("read output file %q: %w", path, err)
	}

	if header == "" {
		return atomicWrite(path, string(existing)+"\n"+content)
	}

	text := string(existing)
	at := strings.Index(text, header)
	if at < 0 {
		return fmt.Errorf("header %q not found in %s: %w", header, path, ErrHeaderNotFound)
	}
	insertAt := at + len(header)
	return atomicWrite(path, text[:insertAt]+"\n"+content+text[insertAt:])
}

// atomicWrite replaces path via a temp file and rename so readers never
// observe a half-written reference.
func atomicWrite(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".meadoc-generate-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", path, err)
	}
	tmpName := tmp.Name()

	writeErr := error(nil)
	if _, err := tmp.WriteString(content); err != nil {
		writeErr = fmt.Errorf("write temp file %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("close temp file %q: %w", tmpName, err)
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return writeErr
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace output file %q: %w", path, err)
	}
	return nil
}

// ThirdPartyReferences collects dotted base-class names that point outside
// the standard typing module; config init seeds the link table with them.
func ThirdPartyReferences(files []*parser.File) []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, file := range files {
		for _, class := range file.Classes {
			for _, base := range class.Bases {
				if !strings.Contains(base, ".") || strings.HasPrefix(base, "typing.") {
					continue
				}
				if _, ok := seen[base]; ok {
					continue
				}
				seen[base] = struct{}{}
				refs = append(refs, base)
			}
		}
	}
	sort.Strings(refs)
	return refs
}
