package ir

// NodeKind names the collection operator a scenario node instantiates.
type NodeKind string

// List node kinds.
const (
	KindSourceList NodeKind = "source_list"
	KindConcat     NodeKind = "concat"
	KindMap        NodeKind = "map"
	KindFilter     NodeKind = "filter"
	KindTake       NodeKind = "take"
	KindFlatten    NodeKind = "flatten"
	KindWhereAny   NodeKind = "where_any"
)

// Set node kinds.
const (
	KindSourceSet  NodeKind = "source_set"
	KindUnion      NodeKind = "union"
	KindSetFlatten NodeKind = "set_flatten"
	KindSetMap     NodeKind = "set_map"
	KindToSet      NodeKind = "to_set"
)

// Aggregate node kinds. They observe a list and produce a single value.
const (
	KindSum   NodeKind = "sum"
	KindCount NodeKind = "count"
)

// IsSet reports whether nodes of this kind produce sets.
func (k NodeKind) IsSet() bool {
	switch k {
	case KindSourceSet, KindUnion, KindSetFlatten, KindSetMap, KindToSet:
		return true
	}
	return false
}

// Known reports whether k is a recognised node kind.
func (k NodeKind) Known() bool {
	switch k {
	case KindSourceList, KindConcat, KindMap, KindFilter, KindTake, KindFlatten, KindWhereAny:
		return true
	}
	return k.IsSet() || k.IsAggregate()
}

// IsAggregate reports whether nodes of this kind produce a single value.
func (k NodeKind) IsAggregate() bool {
	return k == KindSum || k == KindCount
}

// IsSource reports whether nodes of this kind accept mutation steps.
func (k NodeKind) IsSource() bool {
	return k == KindSourceList || k == KindSourceSet
}

// StepOp names a mutation applied to a source node.
type StepOp string

const (
	OpSet                 StepOp = "set"
	OpAdd                 StepOp = "add"
	OpAddRange            StepOp = "add_range"
	OpRemove              StepOp = "remove"
	OpRemoveRange         StepOp = "remove_range"
	OpReplace             StepOp = "replace"
	OpReplaceAt           StepOp = "replace_at"
	OpInsertAt            StepOp = "insert_at"
	OpClear               StepOp = "clear"
	OpUnionWith           StepOp = "union_with"
	OpIntersectWith       StepOp = "intersect_with"
	OpExceptWith          StepOp = "except_with"
	OpSymmetricExceptWith StepOp = "symmetric_except_with"
)

// AssertionType names a check evaluated after all steps ran.
type AssertionType string

const (
	AssertFinalSnapshot AssertionType = "final_snapshot"
	AssertEmissionCount AssertionType = "emission_count"
	AssertTraceContains AssertionType = "trace_contains"
)

// Scenario is a collection graph plus the mutations that drive it.
type Scenario struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Nodes       []Node      `json:"nodes" yaml:"nodes"`
	Observe     []string    `json:"observe" yaml:"observe"`
	Steps       []Step      `json:"steps" yaml:"steps"`
	Assertions  []Assertion `json:"assertions,omitempty" yaml:"assertions,omitempty"`
}

// Node declares one collection in the graph. Inputs name earlier nodes.
// For flatten, where_any and set_flatten the elements of the input are
// themselves node names.
type Node struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    NodeKind `json:"kind" yaml:"kind"`
	Inputs  []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Fn      string   `json:"fn,omitempty" yaml:"fn,omitempty"`
	Initial Values   `json:"initial,omitempty" yaml:"initial,omitempty"`
	N       int      `json:"n,omitempty" yaml:"n,omitempty"`
}

// Step mutates one source node. Expect maps node names to the snapshot each
// must hold once the step has propagated.
type Step struct {
	Source string            `json:"source" yaml:"source"`
	Op     StepOp            `json:"op" yaml:"op"`
	Values Values            `json:"values,omitempty" yaml:"values,omitempty"`
	Index  int               `json:"index,omitempty" yaml:"index,omitempty"`
	Expect map[string]Values `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Assertion checks the recorded trace or the final graph state.
type Assertion struct {
	Type   AssertionType `json:"type" yaml:"type"`
	Node   string        `json:"node" yaml:"node"`
	Values Values        `json:"values,omitempty" yaml:"values,omitempty"`
	Count  int           `json:"count,omitempty" yaml:"count,omitempty"`
	Kind   EventKind     `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Node returns the node with the given name.
func (s *Scenario) Node(name string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
