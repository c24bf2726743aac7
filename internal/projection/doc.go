// Package projection keeps a mutable, index-addressable list in step with a
// dynamic collection by applying edit scripts in place.
//
// Elements the diff classifies as Match keep their slot: they are never
// written, so consumers that track items by position or by reference (list
// views with a selection, for instance) only see the slots that changed.
package projection
