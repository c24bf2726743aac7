package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rcc/internal/harness"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Files    int       `json:"files"`
	Problems []Problem `json:"problems,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-file-or-dir>",
		Short: "Validate scenarios without running them",
		Long: `Validate scenario files against the scenario schema and the graph rules
(known node kinds and functions, input arity, source-only steps, acyclic
dependencies) without building any collections.

Exit codes:
  0 - All scenarios are valid
  1 - One or more scenarios are invalid
  2 - Command error (path not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	files, err := findScenarioFiles(path, "")
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to find scenarios", err)
	}
	if len(files) == 0 {
		return formatter.Fail(ExitCommandError, ErrCodeNoFiles, fmt.Sprintf("no scenario files found in %s", path), nil)
	}

	result := ValidationResult{Valid: true, Files: len(files)}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		if _, err := harness.LoadScenario(file); err != nil {
			result.Valid = false
			result.Problems = append(result.Problems, problemsFromError(file, err)...)
		}
	}

	if formatter.IsJSON() {
		if err := formatter.Result(result.Valid, result, ErrCodeParse, "validation failed"); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, p := range result.Problems {
			loc := p.File
			if p.Line > 0 {
				loc = fmt.Sprintf("%s:%d", p.File, p.Line)
			}
			if p.Field != "" {
				fmt.Fprintf(w, "%s: [%s] %s: %s\n", loc, p.Code, p.Field, p.Message)
			} else {
				fmt.Fprintf(w, "%s: [%s] %s\n", loc, p.Code, p.Message)
			}
		}
		if result.Valid {
			fmt.Fprintf(w, "✓ %d scenario(s) valid\n", result.Files)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", len(result.Problems)))
	}
	return nil
}
