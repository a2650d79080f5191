package main

import (
	"github.com/spf13/cobra"

	"meadoc/internal/checker"
)

// addCheckFlags registers the flags shared by every command that walks
// Python sources and applies the drift checks.
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("ignore-no-docstring", "n", false, "Suppress "+string(checker.CodeMissing)+" (missing docstring)")
	cmd.Flags().BoolP("ignore-outdated", "o", false, "Suppress "+string(checker.CodeOutdated)+" (outdated docstring)")
	cmd.Flags().BoolP("ignore-malformed", "m", false, "Suppress "+string(checker.CodeMalformed)+" (malformed docstring)")
	cmd.Flags().StringSlice("ignore", nil, "Glob patterns for paths to skip")
}

// ignoredCodes turns the suppression flags into issue codes for the
// configuration merge.
func ignoredCodes(cmd *cobra.Command) []string {
	var codes []string
	for _, f := range []struct {
		flag string
		code checker.Code
	}{
		{"ignore-no-docstring", checker.CodeMissing},
		{"ignore-outdated", checker.CodeOutdated},
		{"ignore-malformed", checker.CodeMalformed},
	} {
		if on, _ := cmd.Flags().GetBool(f.flag); on {
			codes = append(codes, string(f.code))
		}
	}
	return codes
}

func ignorePatterns(cmd *cobra.Command) []string {
	patterns, _ := cmd.Flags().GetStringSlice("ignore")
	return patterns
}

// rootsOrCwd defaults the positional file arguments to the current
// directory.
func rootsOrCwd(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
