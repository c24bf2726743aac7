package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rcc/internal/ir"
	"github.com/roach88/rcc/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string
	Scenario string
	Node     string
	List     bool
}

// TraceOutput is a journaled run with its events.
type TraceOutput struct {
	RunID     string          `json:"run_id"`
	Scenario  string          `json:"scenario"`
	Pass      bool            `json:"pass"`
	TraceHash string          `json:"trace_hash"`
	Errors    []string        `json:"errors,omitempty"`
	Events    []ir.TraceEvent `json:"events"`
}

// RunSummary is one line of "trace --list".
type RunSummary struct {
	RunID     string `json:"run_id"`
	Seq       int64  `json:"seq"`
	Scenario  string `json:"scenario"`
	Pass      bool   `json:"pass"`
	TraceHash string `json:"trace_hash"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the journaled trace of a run",
		Long: `Show the events recorded for a journaled run, in emission order.

Without --run the latest run is shown, optionally the latest run of
--scenario. --list prints the journaled runs instead.

Examples:
  rcc trace --db ./rcc.db
  rcc trace --db ./rcc.db --run 0191e9d0-... --node y
  rcc trace --db ./rcc.db --list --scenario concat_three`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID (default: latest run)")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "restrict to runs of this scenario")
	cmd.Flags().StringVar(&opts.Node, "node", "", "show only events of this node")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list runs instead of showing a trace")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// openExisting opens a journal that must already exist.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return store.Open(path)
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
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

	if opts.List {
		return listRuns(ctx, st, opts.Scenario, formatter)
	}

	var run store.Run
	if opts.RunID != "" {
		run, err = st.ReadRun(ctx, opts.RunID)
	} else {
		run, err = st.LatestRun(ctx, opts.Scenario)
	}
	if errors.Is(err, store.ErrRunNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "run not found", err)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to read run", err)
	}

	events, err := st.ReadNodeEvents(ctx, run.ID, opts.Node)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to read events", err)
	}

	out := TraceOutput{
		RunID:     run.ID,
		Scenario:  run.ScenarioName,
		Pass:      run.Pass,
		TraceHash: run.TraceHash,
		Errors:    run.Errors,
		Events:    events,
	}
	if formatter.IsJSON() {
		return formatter.Success(out)
	}
	printTraceText(formatter.Writer, out)
	return nil
}

func listRuns(ctx context.Context, st *store.Store, scenario string, formatter *OutputFormatter) error {
	runs, err := st.ListRuns(ctx, scenario)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to list runs", err)
	}
	summaries := make([]RunSummary, len(runs))
	for i, r := range runs {
		summaries[i] = RunSummary{RunID: r.ID, Seq: r.Seq, Scenario: r.ScenarioName, Pass: r.Pass, TraceHash: r.TraceHash}
	}
	if formatter.IsJSON() {
		return formatter.Success(summaries)
	}
	w := formatter.Writer
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No runs found.")
		return nil
	}
	for _, r := range summaries {
		status := "pass"
		if !r.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%4d  %s  %-4s  %s\n", r.Seq, r.RunID, status, r.Scenario)
	}
	return nil
}

func printTraceText(w io.Writer, out TraceOutput) {
	status := "pass"
	if !out.Pass {
		status = "FAIL"
	}
	fmt.Fprintf(w, "Run %s: %s (%s)\n", out.RunID, out.Scenario, status)
	fmt.Fprintf(w, "Trace hash: %s\n", out.TraceHash)
	for _, e := range out.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
	fmt.Fprintln(w)
	if len(out.Events) == 0 {
		fmt.Fprintln(w, "No events.")
		return
	}
	for _, e := range out.Events {
		fmt.Fprintln(w, formatEvent(e))
	}
}

// formatEvent renders an event on one line, e.g.
// "[4] step 1 y snapshot [1,2]".
func formatEvent(e ir.TraceEvent) string {
	prefix := fmt.Sprintf("[%d] step %d %s %s", e.Seq, e.Step, e.Node, e.Kind)
	switch e.Kind {
	case ir.EventEdit:
		parts := make([]string, len(e.Edits))
		for i, ed := range e.Edits {
			parts[i] = formatEdit(ed)
		}
		return prefix + " " + strings.Join(parts, " ")
	case ir.EventError:
		return prefix + " " + e.Error
	default:
		return prefix + " " + e.Values.String()
	}
}

func formatEdit(e ir.Edit) string {
	switch e.Op {
	case "insert":
		return fmt.Sprintf("+%s@%d", ir.Format(e.New), e.NewIndex)
	case "delete":
		return fmt.Sprintf("-%s@%d", ir.Format(e.Old), e.OldIndex)
	case "match":
		return fmt.Sprintf("=%s", ir.Format(e.New))
	default:
		return fmt.Sprintf("%s:%s->%s@%d", e.Op, ir.Format(e.Old), ir.Format(e.New), e.NewIndex)
	}
}
