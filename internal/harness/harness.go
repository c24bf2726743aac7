package harness

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/rcc/internal/collection"
	"github.com/roach88/rcc/internal/compiler"
	"github.com/roach88/rcc/internal/ir"
)

// Option configures Run.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	sourceOptions []collection.Option
}

// WithLogger sets the logger used for step progress. Logs are discarded by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxReentrancy bounds how often a source may be re-entered while one
// of its snapshots propagates.
func WithMaxReentrancy(n int) Option {
	return func(c *config) {
		c.sourceOptions = append(c.sourceOptions, collection.WithMaxReentrancy(n))
	}
}

// Run builds the scenario's graph, applies its steps and returns the
// recorded trace.
//
// Failures of the scenario itself (a step error, a mismatched expectation,
// a failed assertion) are reported in the Result. The returned error is
// reserved for scenarios that cannot be run at all.
func Run(s *ir.Scenario, opts ...Option) (*Result, error) {
	cfg := &config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger.With("scenario", s.Name)

	if errs := compiler.ValidateGraph(s); len(errs) > 0 {
		return nil, fmt.Errorf("invalid scenario: %w", errs)
	}
	g, err := buildGraph(s, cfg.sourceOptions...)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	result := NewResult()
	rec := newRecorder()
	observers := make(map[string]observer, len(s.Observe))
	defer func() {
		for _, o := range observers {
			o.dispose()
		}
	}()

	for _, name := range s.Observe {
		o, err := observe(g, name, rec)
		if err != nil {
			rec.record(ir.TraceEvent{Node: name, Kind: ir.EventError, Error: err.Error()})
			result.AddError(fmt.Sprintf("observe %s: %v", name, err))
			result.Trace = rec.trace
			return result, nil
		}
		observers[name] = o
	}
	verify(result, observers, s.Observe, nil, 0)

	for i, step := range s.Steps {
		rec.step = i + 1
		if err := g.apply(step); err != nil {
			rec.record(ir.TraceEvent{Node: step.Source, Kind: ir.EventError, Error: err.Error()})
			result.AddError(fmt.Sprintf("step %d (%s %s): %v", i+1, step.Op, step.Source, err))
			logger.Debug("step failed", "step", i+1, "source", step.Source, "op", step.Op, "error", err)
			break
		}
		logger.Debug("step applied", "step", i+1, "source", step.Source, "op", step.Op)
		verify(result, observers, s.Observe, step.Expect, i+1)
	}

	for _, name := range s.Observe {
		result.Final[name] = observers[name].current()
	}
	result.Trace = rec.trace

	for _, msg := range EvaluateAssertions(s, result) {
		result.AddError(msg)
	}
	logger.Debug("scenario finished", "pass", result.Pass, "events", len(result.Trace))
	return result, nil
}

// verify checks stream errors, projection consistency and the step's
// expectations.
func verify(result *Result, observers map[string]observer, names []string, expect map[string]ir.Values, step int) {
	for _, name := range names {
		o := observers[name]
		if err := o.err(); err != nil {
			result.AddError(fmt.Sprintf("step %d: node %s: %v", step, name, err))
			continue
		}
		if err := o.check(); err != nil {
			result.AddError(fmt.Sprintf("step %d: %v", step, err))
		}
	}
	for _, name := range ir.SortedKeys(expect) {
		o, ok := observers[name]
		if !ok {
			result.AddError(fmt.Sprintf("step %d: node %s is not observed", step, name))
			continue
		}
		want, got := expect[name], o.current()
		if _, isSet := o.(*setObserver); isSet {
			want = ir.SortValues(want)
		}
		if !slices.Equal(want, got) {
			result.AddError(fmt.Sprintf("step %d: node %s: unexpected snapshot (-want +got):\n%s",
				step, name, cmp.Diff(want.String(), got.String())))
		}
	}
}
