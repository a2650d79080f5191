package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"meadoc/internal/config"
	"meadoc/internal/generator"
	"meadoc/internal/parser"
	"meadoc/internal/traversal"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show how meadoc is configured",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(".", nil, "")
		fmt.Println("meadoc reads settings from pyproject.toml ([tool.meadoc]) and meadoc.toml.")
		fmt.Println("Flags win over pyproject.toml, which wins over meadoc.toml.")
		fmt.Println()
		fmt.Printf("extend-ignore:  %v\n", cfg.ExtendIgnore)
		fmt.Printf("todoc-message:  %q\n", cfg.TodocMessage)
		fmt.Printf("links:          %d configured\n", len(cfg.Links))
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [files...]",
	Short: "Write a meadoc.toml seeded with discovered third party types",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConfigInit(cmd, args); err != nil {
			slog.Error("config init failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigInit scans the project for base classes imported from third
// party modules and writes a settings file with empty link slots for them.
func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat("meadoc.toml"); err == nil {
		return fmt.Errorf("meadoc.toml already exists")
	}

	paths, err := traversal.FindPythonFiles(rootsOrCwd(args), nil)
	if err != nil {
		return err
	}

	var files []*parser.File
	p := parser.New()
	for _, path := range paths {
		file, err := p.ParseFile(path)
		if err != nil {
			slog.Debug("skipping file", "path", path, "error", err)
			continue
		}
		files = append(files, file)
	}

	cfg := config.Default()
	for _, ref := range generator.ThirdPartyReferences(files) {
		cfg.Links[ref] = ""
	}

	if err := config.WriteProjectFile("meadoc.toml", cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote meadoc.toml with %d discovered reference(s)\n", len(cfg.Links))
	return nil
}
