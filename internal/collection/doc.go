// Package collection implements dynamic lists and sets composed from other
// dynamic collections.
//
// A dynamic collection publishes whole snapshots, never incremental edits:
// subscribing to Items yields the current snapshot immediately and every
// later snapshot as upstream collections change. Combinators (Map, Concat,
// Bind, Where, Take, Union and the aggregates) are pure functions of their
// inputs' snapshots and recompute on every upstream emission.
//
// Sources (SourceList, SourceSet) are the only mutable cells. Setting a new
// snapshot pushes it synchronously and depth-first through every reachable
// combinator before SetSource returns. Sibling changes are not coalesced:
// two mutations produce two downstream recomputations.
//
// Bind keeps one binding node per key occurrence of the outer snapshot.
// Nodes whose key persists across outer changes keep their subscription;
// nodes whose key disappears are disposed before nodes for new keys are
// projected.
//
// Collections are not safe for concurrent use. A graph and all of its
// sources must be driven from one goroutine at a time.
package collection
