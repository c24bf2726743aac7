package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rcc/internal/compiler"
	"github.com/roach88/rcc/internal/harness"
	"github.com/roach88/rcc/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string
}

// CompileResult describes a compiled scenario.
type CompileResult struct {
	Name   string   `json:"name"`
	Hash   string   `json:"hash"`
	Order  []string `json:"order"`
	Nodes  int      `json:"nodes"`
	Steps  int      `json:"steps"`
	Output string   `json:"output,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <scenario-file>",
		Short: "Compile a scenario to canonical JSON",
		Long: `Compile a YAML, JSON or CUE scenario into its canonical JSON form.

The canonical form is what the scenario hash is computed over, so two files
that describe the same scenario compile to identical bytes.

Examples:
  rcc compile scenarios/concat.yaml
  rcc compile scenarios/sets.cue -o build/sets.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical JSON to this file")
	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := harness.LoadScenario(path)
	if err != nil {
		problems := problemsFromError(path, err)
		if formatter.IsJSON() {
			if outErr := formatter.Error(problems[0].Code, "compile failed", problems); outErr != nil {
				return outErr
			}
		} else {
			for _, p := range problems {
				fmt.Fprintf(formatter.Writer, "Error [%s]: %s\n", p.Code, p.Message)
			}
		}
		if problems[0].Code == ErrCodeNotFound {
			return WrapExitError(ExitCommandError, "compile failed", err)
		}
		return WrapExitError(ExitFailure, "compile failed", err)
	}

	data, err := ir.Canonicalize(s)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "failed to canonicalize scenario", err)
	}
	hash, err := ir.ScenarioHash(s)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "failed to hash scenario", err)
	}
	order, err := compiler.Order(s)
	if err != nil {
		return formatter.Fail(ExitFailure, compiler.ErrCycle, "failed to order nodes", err)
	}

	result := CompileResult{
		Name:   s.Name,
		Hash:   hash,
		Order:  order,
		Nodes:  len(s.Nodes),
		Steps:  len(s.Steps),
		Output: opts.Output,
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to write output", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	if opts.Output == "" {
		fmt.Fprintln(formatter.Writer, string(data))
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ %s compiled to %s\n  hash: %s\n", s.Name, opts.Output, hash)
	return nil
}
