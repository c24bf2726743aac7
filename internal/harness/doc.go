// Package harness runs collection scenarios and records what observers see.
//
// A scenario declares a graph of collections, the nodes to observe, and a
// sequence of mutations applied to its sources. The harness builds the graph
// with the collection package, subscribes to every observed node, applies
// each step, and records a trace of snapshot, edit, added, removed and value
// events. After every step it checks the declared expectations and that a
// mutable projection of each observed list still equals the list's snapshot.
//
// # Scenario Format
//
// Scenarios are YAML, JSON or CUE files:
//
//	name: nested_where_any
//	description: "outer list of inner lists filtered by contents"
//	nodes:
//	  - {name: a, kind: source_list}
//	  - {name: x, kind: source_list}
//	  - {name: hits, kind: where_any, inputs: [a], fn: big}
//	observe: [hits]
//	steps:
//	  - {source: a, op: add, values: [x], expect: {hits: []}}
//	  - {source: x, op: add, values: [11], expect: {hits: [x]}}
//	assertions:
//	  - {type: emission_count, node: hits, count: 2}
//
// Elements of flatten, where_any and set_flatten inputs are the names of
// other nodes, which is how scenarios express nested binds.
//
// # Deterministic Traces
//
// Events are stamped by a logical clock, never wall time, so the same
// scenario always produces byte-identical canonical JSON. Golden files
// compare that JSON across runs.
package harness
