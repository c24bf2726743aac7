package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/rcc/internal/harness"
	"github.com/roach88/rcc/internal/ir"
	"github.com/roach88/rcc/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Trace    bool

	// RunIDs names journaled runs. Defaults to harness.UUIDv7Generator.
	RunIDs harness.RunIDGenerator
}

// RunOutput describes one scenario run.
type RunOutput struct {
	Scenario  string               `json:"scenario"`
	RunID     string               `json:"run_id,omitempty"`
	Pass      bool                 `json:"pass"`
	Events    int                  `json:"events"`
	TraceHash string               `json:"trace_hash"`
	Errors    []string             `json:"errors,omitempty"`
	Final     map[string]ir.Values `json:"final"`
	Trace     []ir.TraceEvent      `json:"trace,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts, RunIDs: harness.UUIDv7Generator{}})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario-file>",
		Short: "Run a scenario and report what observers saw",
		Long: `Build the scenario's collection graph, apply its steps and check every
expectation and assertion.

With --db the run and its full trace are journaled to a SQLite database
(created if missing) for later inspection with "trace" and "replay".

Exit codes:
  0 - Scenario passed
  1 - Scenario failed
  2 - Command error (file not found, database error, etc.)

Examples:
  rcc run scenarios/concat.yaml
  rcc run scenarios/concat.yaml --db ./rcc.db --trace`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the run to this SQLite database")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "include the full trace in the output")
	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	s, err := harness.LoadScenario(path)
	if err != nil {
		problems := problemsFromError(path, err)
		exit := ExitFailure
		if problems[0].Code == ErrCodeNotFound {
			exit = ExitCommandError
		}
		if outErr := formatter.Error(problems[0].Code, "failed to load scenario", problems); outErr != nil {
			return outErr
		}
		return WrapExitError(exit, "failed to load scenario", err)
	}

	logger.Info("running scenario", "scenario", s.Name, "nodes", len(s.Nodes), "steps", len(s.Steps))
	result, err := harness.Run(s, harness.WithLogger(logger))
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "failed to run scenario", err)
	}

	out := RunOutput{
		Scenario: s.Name,
		Pass:     result.Pass,
		Events:   len(result.Trace),
		Errors:   result.Errors,
		Final:    result.Final,
	}
	if opts.Trace {
		out.Trace = result.Trace
	}
	if out.TraceHash, err = ir.TraceHash(result.Trace); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "failed to hash trace", err)
	}

	if opts.Database != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if out.RunID, err = journalRun(ctx, opts, s, result, logger); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to journal run", err)
		}
	}

	if formatter.IsJSON() {
		if err := formatter.Result(out.Pass, out, ErrCodeScenarioFailed, "scenario failed"); err != nil {
			return err
		}
	} else {
		printRunText(formatter.Writer, s, out)
	}

	if !out.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", s.Name))
	}
	return nil
}

func journalRun(ctx context.Context, opts *RunOptions, s *ir.Scenario, result *harness.Result, logger *slog.Logger) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	ids := opts.RunIDs
	if ids == nil {
		ids = harness.UUIDv7Generator{}
	}
	run, err := st.WriteRun(ctx, store.Run{
		ID:       ids.Generate(),
		Scenario: s,
		Pass:     result.Pass,
		Errors:   result.Errors,
	}, result.Trace)
	if err != nil {
		return "", err
	}
	logger.Info("run journaled", "run", run.ID, "db", opts.Database, "trace_hash", run.TraceHash)
	return run.ID, nil
}

func printRunText(w io.Writer, s *ir.Scenario, out RunOutput) {
	mark := "✓"
	if !out.Pass {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s %s (%d events)\n", mark, out.Scenario, out.Events)
	if out.RunID != "" {
		fmt.Fprintf(w, "  run: %s\n", out.RunID)
	}
	for _, e := range out.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
	for _, name := range s.Observe {
		fmt.Fprintf(w, "  %s = %s\n", name, out.Final[name])
	}
	if len(out.Trace) > 0 {
		fmt.Fprintln(w)
		for _, e := range out.Trace {
			fmt.Fprintln(w, formatEvent(e))
		}
	}
}
