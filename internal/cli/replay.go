package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rcc/internal/harness"
	"github.com/roach88/rcc/internal/ir"
	"github.com/roach88/rcc/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunID         string         `json:"run_id"`
	Scenario      string         `json:"scenario"`
	Deterministic bool           `json:"deterministic"`
	StoredHash    string         `json:"stored_hash"`
	ReplayedHash  string         `json:"replayed_hash"`
	Divergence    int            `json:"divergence"`
	Stored        *ir.TraceEvent `json:"stored,omitempty"`
	Replayed      *ir.TraceEvent `json:"replayed,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run journaled scenarios and verify determinism",
		Long: `Re-run the scenario of every journaled run (or of --run only) and compare
the new trace with the stored one, event by event.

Exit codes:
  0 - All replayed traces are identical
  1 - At least one trace diverged
  2 - Command error (database not found, run not found, etc.)

Examples:
  rcc replay --db ./rcc.db
  rcc replay --db ./rcc.db --run 0191e9d0-...
  rcc replay --db ./rcc.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay only this run")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// replayRunner reruns a scenario with the harness.
func replayRunner(s *ir.Scenario) ([]ir.TraceEvent, error) {
	result, err := harness.Run(s)
	if err != nil {
		return nil, err
	}
	return result.Trace, nil
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openExisting(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer st.Close()

	var ids []string
	if opts.RunID != "" {
		ids = []string{opts.RunID}
	} else {
		runs, err := st.ListRuns(ctx, "")
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to list runs", err)
		}
		for _, r := range runs {
			ids = append(ids, r.ID)
		}
	}

	result := ReplayResult{Runs: []ReplayRunResult{}, AllDeterministic: true}
	for _, id := range ids {
		formatter.VerboseLog("Replaying %s", id)
		report, err := st.Replay(ctx, id, replayRunner)
		if errors.Is(err, store.ErrRunNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, "run not found", err)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "replay failed", err)
		}
		run, err := st.ReadRun(ctx, id)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to read run", err)
		}
		result.Runs = append(result.Runs, ReplayRunResult{
			RunID:         id,
			Scenario:      run.ScenarioName,
			Deterministic: report.Match,
			StoredHash:    report.StoredHash,
			ReplayedHash:  report.ReplayedHash,
			Divergence:    report.Divergence,
			Stored:        report.Stored,
			Replayed:      report.Replayed,
		})
		if !report.Match {
			result.AllDeterministic = false
		}
	}
	result.TotalRuns = len(result.Runs)

	if formatter.IsJSON() {
		if err := formatter.Result(result.AllDeterministic, result, ErrCodeNondeterminism, "replay diverged"); err != nil {
			return err
		}
	} else {
		printReplayText(formatter, result)
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay diverged from the journaled trace")
	}
	return nil
}

func printReplayText(f *OutputFormatter, result ReplayResult) {
	w := f.Writer
	if result.TotalRuns == 0 {
		fmt.Fprintln(w, "No runs to replay.")
		return
	}
	for _, r := range result.Runs {
		if r.Deterministic {
			fmt.Fprintf(w, "✓ %s (%s)\n", r.Scenario, r.RunID)
			continue
		}
		fmt.Fprintf(w, "✗ %s (%s): diverged at event %d\n", r.Scenario, r.RunID, r.Divergence)
		if r.Stored != nil {
			fmt.Fprintf(w, "  stored:   %s\n", formatEvent(*r.Stored))
		}
		if r.Replayed != nil {
			fmt.Fprintf(w, "  replayed: %s\n", formatEvent(*r.Replayed))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replayed %d run(s)\n", result.TotalRuns)
	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All runs deterministic")
	}
}
