// Package snapshot provides the immutable values that dynamic collections
// publish: ordered lists and deduplicated sets.
//
// A snapshot is never modified after construction. Every mutator returns a
// new value backed by fresh storage, so a snapshot handed to one subscriber
// can be retained indefinitely while the source moves on. A mutator that
// would change nothing returns its receiver, which lets sources detect no-op
// updates with Same.
package snapshot
