package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/rcc/internal/ir"
)

// Graph validation error codes (E200-E299).
const (
	ErrUnknownKind     = "E200" // node kind not recognised
	ErrDuplicateNode   = "E201" // node name declared twice
	ErrUnknownInput    = "E202" // input names no node
	ErrInputArity      = "E203" // wrong number of inputs for the kind
	ErrInputKind       = "E204" // list input where a set is required or the reverse
	ErrUnknownFunction = "E205" // fn missing, unknown, or given to a kind without one
	ErrMisplacedField  = "E206" // initial or n on a kind that does not take it
	ErrUnknownNode     = "E207" // observe, step, expect or assertion names no node
	ErrNotSource       = "E208" // step targets a derived node
	ErrInvalidOp       = "E209" // operation not supported by the source kind
	ErrValueCount      = "E210" // wrong number of values for the operation
	ErrNotObserved     = "E211" // expect or assertion on a node that is not observed
	ErrInvalidKind     = "E212" // event kind not usable by the assertion
	ErrCycle           = "E213" // node depends on itself
)

// ValidationError is one graph rule violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every violation found in one scenario.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

var listOps = map[ir.StepOp]bool{
	ir.OpSet: true, ir.OpAdd: true, ir.OpAddRange: true, ir.OpRemove: true,
	ir.OpRemoveRange: true, ir.OpReplace: true, ir.OpReplaceAt: true,
	ir.OpInsertAt: true, ir.OpClear: true,
}

var setOps = map[ir.StepOp]bool{
	ir.OpSet: true, ir.OpAdd: true, ir.OpAddRange: true, ir.OpRemove: true,
	ir.OpClear: true, ir.OpUnionWith: true, ir.OpIntersectWith: true,
	ir.OpExceptWith: true, ir.OpSymmetricExceptWith: true,
}

// ValidateGraph checks the rules the schema cannot express. It returns all
// violations rather than stopping at the first.
func ValidateGraph(s *ir.Scenario) ValidationErrors {
	var errs ValidationErrors
	add := func(code, field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Code: code})
	}

	nodes := make(map[string]ir.Node, len(s.Nodes))
	for i, n := range s.Nodes {
		if _, dup := nodes[n.Name]; dup {
			add(ErrDuplicateNode, fmt.Sprintf("nodes[%d].name", i), "duplicate node %q", n.Name)
			continue
		}
		nodes[n.Name] = n
	}

	for i, n := range s.Nodes {
		field := fmt.Sprintf("nodes[%d]", i)
		if !n.Kind.Known() {
			add(ErrUnknownKind, field+".kind", "unknown kind %q", n.Kind)
			continue
		}
		validateInputs(n, nodes, field, add)
		validateFn(n, field, add)
		if len(n.Initial) > 0 && !n.Kind.IsSource() {
			add(ErrMisplacedField, field+".initial", "%s nodes take no initial values", n.Kind)
		}
		if n.N != 0 && n.Kind != ir.KindTake {
			add(ErrMisplacedField, field+".n", "n is only valid for take")
		}
		if n.N < 0 {
			add(ErrMisplacedField, field+".n", "n must be non-negative")
		}
	}

	observed := make(map[string]bool, len(s.Observe))
	for i, name := range s.Observe {
		if _, ok := nodes[name]; !ok {
			add(ErrUnknownNode, fmt.Sprintf("observe[%d]", i), "unknown node %q", name)
		}
		observed[name] = true
	}

	for i, st := range s.Steps {
		validateStep(i, st, nodes, observed, add)
	}

	for i, a := range s.Assertions {
		field := fmt.Sprintf("assertions[%d]", i)
		if _, ok := nodes[a.Node]; !ok {
			add(ErrUnknownNode, field+".node", "unknown node %q", a.Node)
			continue
		}
		if !observed[a.Node] {
			add(ErrNotObserved, field+".node", "node %q is not observed", a.Node)
		}
		switch a.Type {
		case ir.AssertTraceContains:
			switch a.Kind {
			case "", ir.EventSnapshot, ir.EventAdded, ir.EventRemoved, ir.EventValue:
			default:
				add(ErrInvalidKind, field+".kind", "trace_contains cannot match %s events", a.Kind)
			}
		case ir.AssertEmissionCount:
			if a.Count < 0 {
				add(ErrValueCount, field+".count", "count must be non-negative")
			}
		}
	}

	if _, err := Order(s); err != nil {
		add(ErrCycle, "nodes", "%v", err)
	}
	return errs
}

func validateInputs(n ir.Node, nodes map[string]ir.Node, field string, add func(code, field, format string, args ...any)) {
	var want string
	switch n.Kind {
	case ir.KindSourceList, ir.KindSourceSet:
		if len(n.Inputs) > 0 {
			add(ErrInputArity, field+".inputs", "%s nodes take no inputs", n.Kind)
		}
		return
	case ir.KindConcat, ir.KindUnion:
		want = "at least one"
		if len(n.Inputs) == 0 {
			add(ErrInputArity, field+".inputs", "%s needs %s input", n.Kind, want)
		}
	default:
		want = "exactly one"
		if len(n.Inputs) != 1 {
			add(ErrInputArity, field+".inputs", "%s needs %s input, got %d", n.Kind, want, len(n.Inputs))
		}
	}

	wantSet := n.Kind == ir.KindUnion || n.Kind == ir.KindSetFlatten || n.Kind == ir.KindSetMap
	for j, in := range n.Inputs {
		src, ok := nodes[in]
		if !ok {
			add(ErrUnknownInput, fmt.Sprintf("%s.inputs[%d]", field, j), "unknown node %q", in)
			continue
		}
		switch {
		case src.Kind.IsAggregate():
			add(ErrInputKind, fmt.Sprintf("%s.inputs[%d]", field, j), "%q is an aggregate", in)
		case src.Kind.IsSet() != wantSet:
			add(ErrInputKind, fmt.Sprintf("%s.inputs[%d]", field, j), "%s cannot take %s node %q", n.Kind, src.Kind, in)
		}
	}
}

func validateFn(n ir.Node, field string, add func(code, field, format string, args ...any)) {
	switch n.Kind {
	case ir.KindMap, ir.KindSetMap:
		if _, ok := ir.LookupMap(n.Fn); !ok {
			add(ErrUnknownFunction, field+".fn", "unknown map function %q (have %s)", n.Fn, strings.Join(ir.MapFuncNames(), ", "))
		}
	case ir.KindFilter, ir.KindWhereAny:
		if _, ok := ir.LookupPredicate(n.Fn); !ok {
			add(ErrUnknownFunction, field+".fn", "unknown predicate %q (have %s)", n.Fn, strings.Join(ir.PredicateNames(), ", "))
		}
	default:
		if n.Fn != "" {
			add(ErrUnknownFunction, field+".fn", "%s nodes take no function", n.Kind)
		}
	}
}

func validateStep(i int, st ir.Step, nodes map[string]ir.Node, observed map[string]bool, add func(code, field, format string, args ...any)) {
	field := fmt.Sprintf("steps[%d]", i)
	src, ok := nodes[st.Source]
	switch {
	case !ok:
		add(ErrUnknownNode, field+".source", "unknown node %q", st.Source)
	case !src.Kind.IsSource():
		add(ErrNotSource, field+".source", "%q is a %s node, not a source", st.Source, src.Kind)
	case src.Kind == ir.KindSourceList && !listOps[st.Op]:
		add(ErrInvalidOp, field+".op", "%s is not a list operation", st.Op)
	case src.Kind == ir.KindSourceSet && !setOps[st.Op]:
		add(ErrInvalidOp, field+".op", "%s is not a set operation", st.Op)
	}

	n := len(st.Values)
	switch st.Op {
	case ir.OpAdd, ir.OpRemove, ir.OpReplaceAt:
		if n != 1 {
			add(ErrValueCount, field+".values", "%s takes exactly one value, got %d", st.Op, n)
		}
	case ir.OpReplace:
		if n != 2 {
			add(ErrValueCount, field+".values", "replace takes [old, new], got %d values", n)
		}
	case ir.OpInsertAt:
		if n == 0 {
			add(ErrValueCount, field+".values", "insert_at takes at least one value")
		}
	case ir.OpClear:
		if n != 0 {
			add(ErrValueCount, field+".values", "clear takes no values")
		}
	}
	if st.Index != 0 && st.Op != ir.OpReplaceAt && st.Op != ir.OpInsertAt {
		add(ErrMisplacedField, field+".index", "index is only valid for replace_at and insert_at")
	}

	for _, name := range ir.SortedKeys(st.Expect) {
		target, ok := nodes[name]
		if !ok {
			add(ErrUnknownNode, field+".expect", "unknown node %q", name)
			continue
		}
		if !observed[name] {
			add(ErrNotObserved, field+".expect", "node %q is not observed", name)
		}
		if target.Kind.IsAggregate() && len(st.Expect[name]) != 1 {
			add(ErrValueCount, field+".expect."+name, "aggregate expectations hold exactly one value")
		}
	}
}
