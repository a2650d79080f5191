package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"meadoc/internal/config"
	"meadoc/internal/generator"
	"meadoc/internal/traversal"
)

var (
	generateOutput string
	generateHeader string
	generateMatch  string
)

var generateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Render a markdown API reference",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(cmd, args); err != nil {
			slog.Error("generate failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	addCheckFlags(generateCmd)
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "Write the reference to this file instead of stdout")
	generateCmd.Flags().StringVar(&generateHeader, "insert-below-header", "", "Insert directly below this marker line in the output file")
	generateCmd.Flags().StringVar(&generateMatch, "match", "", "Only include names matching this glob (or /regexp)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.Load(".", ignoredCodes(cmd), "")

	files, err := traversal.FindPythonFiles(rootsOrCwd(args), ignorePatterns(cmd))
	if err != nil {
		return err
	}

	content, err := generator.Generate(files, &cfg, generateMatch)
	if err != nil {
		return err
	}

	if generateOutput == "" {
		fmt.Println(content)
		return nil
	}
	if err := generator.WriteOutput(generateOutput, content, generateHeader); err != nil {
		return err
	}
	fmt.Printf("Wrote API reference to %s\n", generateOutput)
	return nil
}
