package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/rcc/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     ir.AssertionType
	Node     string
	Expected string
	Actual   string
	Trace    []ir.TraceEvent // events of Node, for context
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed: %s on %s\n", e.Type, e.Node)
	fmt.Fprintf(&buf, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  actual: %s\n", e.Actual)
	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nnode trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] step %d %s %s\n", ev.Seq, ev.Step, ev.Kind, describe(ev))
		}
	}
	return buf.String()
}

func describe(ev ir.TraceEvent) string {
	switch {
	case ev.Error != "":
		return ev.Error
	case len(ev.Edits) > 0:
		parts := make([]string, len(ev.Edits))
		for i, e := range ev.Edits {
			parts[i] = e.Op
		}
		return strings.Join(parts, ",")
	default:
		return ev.Values.String()
	}
}

// EvaluateAssertions checks every assertion of s against result and returns
// one message per failure.
func EvaluateAssertions(s *ir.Scenario, result *Result) []string {
	var errs []string
	for i, a := range s.Assertions {
		if err := evaluate(s, a, result); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}

func evaluate(s *ir.Scenario, a ir.Assertion, result *Result) error {
	switch a.Type {
	case ir.AssertFinalSnapshot:
		return assertFinalSnapshot(s, a, result)
	case ir.AssertEmissionCount:
		return assertEmissionCount(a, result)
	case ir.AssertTraceContains:
		return assertTraceContains(s, a, result)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertFinalSnapshot(s *ir.Scenario, a ir.Assertion, result *Result) error {
	want, got := a.Values, result.Final[a.Node]
	if unordered(s, a.Node) {
		want = ir.SortValues(want)
	}
	if slices.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Node:     a.Node,
		Expected: want.String(),
		Actual:   got.String(),
		Trace:    result.Events(a.Node, ""),
	}
}

// assertEmissionCount counts events of one kind, snapshots by default. The
// initial snapshot counts as an emission.
func assertEmissionCount(a ir.Assertion, result *Result) error {
	kind := a.Kind
	if kind == "" {
		kind = ir.EventSnapshot
	}
	n := len(result.Events(a.Node, kind))
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Node:     a.Node,
		Expected: fmt.Sprintf("%d %s events", a.Count, kind),
		Actual:   fmt.Sprintf("%d %s events", n, kind),
		Trace:    result.Events(a.Node, ""),
	}
}

// assertTraceContains looks for an event carrying exactly a.Values. Added,
// removed and set snapshot events compare as sets.
func assertTraceContains(s *ir.Scenario, a ir.Assertion, result *Result) error {
	kind := a.Kind
	if kind == "" {
		kind = ir.EventSnapshot
	}
	asSet := kind == ir.EventAdded || kind == ir.EventRemoved || unordered(s, a.Node)
	want := a.Values
	if asSet {
		want = ir.SortValues(want)
	}
	for _, ev := range result.Events(a.Node, kind) {
		got := ev.Values
		if asSet {
			got = ir.SortValues(got)
		}
		if slices.Equal(want, got) {
			return nil
		}
	}
	return &AssertionError{
		Type:     a.Type,
		Node:     a.Node,
		Expected: fmt.Sprintf("%s event with %s", kind, want),
		Actual:   "not found in trace",
		Trace:    result.Events(a.Node, ""),
	}
}

func unordered(s *ir.Scenario, node string) bool {
	n, ok := s.Node(node)
	return ok && n.Kind.IsSet()
}
