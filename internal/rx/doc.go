// Package rx provides the synchronous push-based stream primitives that the
// composite collections are built on.
//
// The package covers exactly what the collection layer needs:
//
//   - Observable / Observer with explicit disposal
//   - Subject (multicast) and BehaviorSubject (multicast with current value)
//   - Map, Filter, CombineLatest2, Switch, Pairwise
//   - Share: replay the latest value to late subscribers and reference-count
//     the upstream connection
//
// EXECUTION MODEL:
//
// Delivery is synchronous and depth-first. OnNext on a subject calls every
// live observer before it returns, and those observers may in turn push into
// further subjects. There is no scheduler, no goroutine and no locking: a
// graph built from these primitives lives on one logical timeline and must
// not be driven from multiple goroutines at once.
//
// Disposal is deterministic. Disposing a subscription stops delivery to that
// observer immediately, including for an emission already in flight.
// Disposing twice is a no-op.
package rx
