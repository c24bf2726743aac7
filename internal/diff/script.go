package diff

import (
	"fmt"

	"github.com/roach88/rcc/internal/snapshot"
)

// Script is an ordered edit script. Applying it to the old sequence with a
// cursor yields the new sequence.
type Script[T any] []Element[T]

// Compute diffs two snapshots with eq (DefaultEqual when nil) and aligns
// differing sections with BasicAligner.
func Compute[T any](before, after snapshot.List[T], eq snapshot.EqualFunc[T]) Script[T] {
	return ComputeWith(before, after, eq, BasicAligner[T]{})
}

// ComputeWith is Compute with a caller-chosen aligner.
func ComputeWith[T any](before, after snapshot.List[T], eq snapshot.EqualFunc[T], aligner Aligner[T]) Script[T] {
	if eq == nil {
		eq = snapshot.DefaultEqual[T]
	}
	b, a := before.Items(), after.Items()
	return Align(b, a, Sections(b, a, eq), aligner)
}

// Counts tallies the script by operation.
func (s Script[T]) Counts() Counts {
	var c Counts
	for _, e := range s {
		switch e.Op {
		case Match:
			c.Match++
		case Insert:
			c.Insert++
		case Delete:
			c.Delete++
		case Replace:
			c.Replace++
		case Modify:
			c.Modify++
		}
	}
	return c
}

// IsIdentity reports whether the script contains only Match elements.
func (s Script[T]) IsIdentity() bool {
	for _, e := range s {
		if e.Op != Match {
			return false
		}
	}
	return true
}

// Apply runs the script against before and returns the resulting snapshot.
// It fails if the script does not fit before's length.
func (s Script[T]) Apply(before snapshot.List[T]) (snapshot.List[T], error) {
	src := before.Items()
	out := make([]T, 0, len(src))
	cursor := 0
	for i, e := range s {
		switch e.Op {
		case Match:
			if cursor >= len(src) {
				return snapshot.List[T]{}, fmt.Errorf("element %d: match past end of input (len %d)", i, len(src))
			}
			out = append(out, src[cursor])
			cursor++
		case Insert:
			out = append(out, e.New)
		case Delete, Replace, Modify:
			if cursor >= len(src) {
				return snapshot.List[T]{}, fmt.Errorf("element %d: %s past end of input (len %d)", i, e.Op, len(src))
			}
			if e.Op != Delete {
				out = append(out, e.New)
			}
			cursor++
		default:
			return snapshot.List[T]{}, fmt.Errorf("element %d: unknown op %s", i, e.Op)
		}
	}
	if cursor != len(src) {
		return snapshot.List[T]{}, fmt.Errorf("script consumed %d of %d input elements", cursor, len(src))
	}
	return snapshot.ListOf(out...), nil
}
