package harness

import "github.com/roach88/rcc/internal/ir"

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every expectation, consistency check and assertion
	// held.
	Pass bool `json:"pass"`

	// Trace holds the events of every observed node in emission order.
	Trace []ir.TraceEvent `json:"trace"`

	// Errors describes each failure. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final maps each observed node to its last snapshot or value.
	Final map[string]ir.Values `json:"final,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []ir.TraceEvent{},
		Errors: []string{},
		Final:  make(map[string]ir.Values),
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Events returns the events recorded for node, optionally restricted to one
// kind.
func (r *Result) Events(node string, kind ir.EventKind) []ir.TraceEvent {
	return filterEvents(r.Trace, node, kind)
}

func filterEvents(trace []ir.TraceEvent, node string, kind ir.EventKind) []ir.TraceEvent {
	var out []ir.TraceEvent
	for _, e := range trace {
		if e.Node == node && (kind == "" || e.Kind == kind) {
			out = append(out, e)
		}
	}
	return out
}
