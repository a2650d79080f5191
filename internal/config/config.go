// Package config resolves meadoc settings from three tiers: invocation
// flags, the project manifest (pyproject.toml [tool.meadoc]), and the
// dedicated meadoc.toml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const DefaultTodocMessage = "TODOC: (meadoc)"

// Config is consumed read-only by the checking and formatting paths.
// Links feed only the markdown generator. A tier loader leaves
// TodocMessage empty when the tier does not set it; Merge applies the
// default last.
type Config struct {
	ExtendIgnore []string
	Links        map[string]string
	TodocMessage string
}

func Default() Config {
	return Config{
		Links:        map[string]string{},
		TodocMessage: DefaultTodocMessage,
	}
}

// Ignores reports whether an issue code is suppressed.
func (c *Config) Ignores(code string) bool {
	for _, ignored := range c.ExtendIgnore {
		if ignored == code {
			return true
		}
	}
	return false
}

// ParseExtendIgnore accepts a single code string, a comma-separated string,
// or a list of code strings. Any other shape yields an empty set.
func ParseExtendIgnore(value any) []string {
	switch v := value.(type) {
	case string:
		if strings.Contains(v, ",") {
			var codes []string
			for _, code := range strings.Split(v, ",") {
				if code = strings.TrimSpace(code); code != "" {
					codes = append(codes, code)
				}
			}
			return codes
		}
		return []string{v}
	case []any:
		var codes []string
		for _, item := range v {
			if code, ok := item.(string); ok {
				codes = append(codes, code)
			}
		}
		return codes
	case []string:
		return v
	}
	return nil
}

// LoadPyproject reads the [tool.meadoc] section of pyproject.toml in dir.
// A missing or unreadable file contributes nothing.
func LoadPyproject(dir string) Config {
	var cfg Config

	var raw map[string]any
	if _, err := toml.DecodeFile(filepath.Join(dir, "pyproject.toml"), &raw); err != nil {
		return cfg
	}

	tool, _ := raw["tool"].(map[string]any)
	section, _ := tool["meadoc"].(map[string]any)
	if section == nil {
		return cfg
	}

	if value, ok := section["extend-ignore"]; ok {
		cfg.ExtendIgnore = ParseExtendIgnore(value)
	}
	if msg, ok := section["todoc-message"].(string); ok {
		cfg.TodocMessage = msg
	}
	return cfg
}

// LoadProjectFile reads meadoc.toml in dir. A missing or unreadable file
// contributes nothing.
func LoadProjectFile(dir string) Config {
	var cfg Config

	var raw map[string]any
	if _, err := toml.DecodeFile(filepath.Join(dir, "meadoc.toml"), &raw); err != nil {
		return cfg
	}

	if value, ok := raw["extend-ignore"]; ok {
		cfg.ExtendIgnore = ParseExtendIgnore(value)
	}
	if links, ok := raw["links"].(map[string]any); ok {
		cfg.Links = map[string]string{}
		for name, url := range links {
			if s, ok := url.(string); ok {
				cfg.Links[name] = s
			}
		}
	}
	if msg, ok := raw["todoc-message"].(string); ok {
		cfg.TodocMessage = msg
	}
	return cfg
}

// Merge combines the three tiers; flags win over pyproject.toml, which wins
// over meadoc.toml. Ignore codes accumulate across tiers without duplicates.
func Merge(pyproject, project Config, cliIgnore []string, cliTodoc string) Config {
	cfg := Default()
	cfg.ExtendIgnore = nil

	for _, tier := range [][]string{pyproject.ExtendIgnore, project.ExtendIgnore, cliIgnore} {
		for _, code := range tier {
			if !cfg.Ignores(code) {
				cfg.ExtendIgnore = append(cfg.ExtendIgnore, code)
			}
		}
	}

	for name, url := range project.Links {
		cfg.Links[name] = url
	}

	switch {
	case cliTodoc != "":
		cfg.TodocMessage = cliTodoc
	case pyproject.TodocMessage != "":
		cfg.TodocMessage = pyproject.TodocMessage
	case project.TodocMessage != "":
		cfg.TodocMessage = project.TodocMessage
	}
	return cfg
}

// Load resolves the effective configuration for dir.
func Load(dir string, cliIgnore []string, cliTodoc string) Config {
	return Merge(LoadPyproject(dir), LoadProjectFile(dir), cliIgnore, cliTodoc)
}

// WriteProjectFile writes cfg as a meadoc.toml settings file.
func WriteProjectFile(path string, cfg Config) error {
	var b strings.Builder

	b.WriteString("extend-ignore = [")
	for i, code := range cfg.ExtendIgnore {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", code)
	}
	b.WriteString("]\n\n")

	b.WriteString("[links]\n")
	b.WriteString("# discovered third party modules placed here automatically\n")
	names := make([]string, 0, len(cfg.Links))
	for name := range cfg.Links {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%q = %q\n", name, cfg.Links[name])
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
