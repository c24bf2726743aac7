package diff

// Aligner turns one differing section into script elements. before and
// after are the section's elements; beforeStart and afterStart are their
// offsets in the full inputs.
//
// The returned elements must consume before and after exactly, in order.
type Aligner[T any] interface {
	Align(before, after []T, beforeStart, afterStart int) []Element[T]
}

// BasicAligner pairs positions up to the shorter side as Replace and emits
// the remainder as Delete or Insert.
type BasicAligner[T any] struct{}

// Align implements Aligner.
func (BasicAligner[T]) Align(before, after []T, beforeStart, afterStart int) []Element[T] {
	out := make([]Element[T], 0, max(len(before), len(after)))
	n := min(len(before), len(after))
	for k := 0; k < n; k++ {
		out = append(out, Element[T]{
			Op:       Replace,
			OldIndex: beforeStart + k,
			NewIndex: afterStart + k,
			Old:      before[k],
			New:      after[k],
		})
	}
	for k := n; k < len(before); k++ {
		out = append(out, deleteElem(before[k], beforeStart+k))
	}
	for k := n; k < len(after); k++ {
		out = append(out, insertElem(after[k], afterStart+k))
	}
	return out
}

// SimilarityAligner emits Modify for positions whose elements Similar
// pairs up. While one side has more elements left than the other, a
// dissimilar element on the longer side is deleted or inserted instead of
// replaced, which gives later elements a chance to pair. A nil Similar
// behaves like BasicAligner.
type SimilarityAligner[T any] struct {
	Similar func(a, b T) bool
}

// Align implements Aligner.
func (s SimilarityAligner[T]) Align(before, after []T, beforeStart, afterStart int) []Element[T] {
	if s.Similar == nil {
		return BasicAligner[T]{}.Align(before, after, beforeStart, afterStart)
	}
	out := make([]Element[T], 0, max(len(before), len(after)))
	i, j := 0, 0
	for i < len(before) && j < len(after) {
		restOld, restNew := len(before)-i, len(after)-j
		switch {
		case s.Similar(before[i], after[j]):
			out = append(out, Element[T]{Op: Modify, OldIndex: beforeStart + i, NewIndex: afterStart + j, Old: before[i], New: after[j]})
			i++
			j++
		case restOld > restNew:
			out = append(out, deleteElem(before[i], beforeStart+i))
			i++
		case restNew > restOld:
			out = append(out, insertElem(after[j], afterStart+j))
			j++
		default:
			out = append(out, Element[T]{Op: Replace, OldIndex: beforeStart + i, NewIndex: afterStart + j, Old: before[i], New: after[j]})
			i++
			j++
		}
	}
	for ; i < len(before); i++ {
		out = append(out, deleteElem(before[i], beforeStart+i))
	}
	for ; j < len(after); j++ {
		out = append(out, insertElem(after[j], afterStart+j))
	}
	return out
}

func deleteElem[T any](v T, at int) Element[T] {
	return Element[T]{Op: Delete, OldIndex: at, NewIndex: -1, Old: v}
}

func insertElem[T any](v T, at int) Element[T] {
	return Element[T]{Op: Insert, OldIndex: -1, NewIndex: at, New: v}
}

// Align expands sections into a Script, matching equal sections directly and
// delegating differing sections to aligner. It panics with *AlignmentError
// if the sections or the aligner output do not cover before and after
// exactly.
func Align[T any](before, after []T, sections []Section, aligner Aligner[T]) Script[T] {
	fail := func(reason string) {
		panic(&AlignmentError{Reason: reason, OldLen: len(before), NewLen: len(after)})
	}

	var script Script[T]
	i1, i2 := 0, 0
	for _, sec := range sections {
		if sec.Len1 < 0 || sec.Len2 < 0 || i1+sec.Len1 > len(before) || i2+sec.Len2 > len(after) {
			fail("section out of range")
		}
		if sec.Equal {
			if sec.Len1 != sec.Len2 {
				fail("equal section with unequal lengths")
			}
			for k := 0; k < sec.Len1; k++ {
				script = append(script, Element[T]{
					Op:       Match,
					OldIndex: i1 + k,
					NewIndex: i2 + k,
					Old:      before[i1+k],
					New:      after[i2+k],
				})
			}
		} else {
			elems := aligner.Align(before[i1:i1+sec.Len1], after[i2:i2+sec.Len2], i1, i2)
			c1, c2 := i1, i2
			for _, e := range elems {
				switch e.Op {
				case Delete:
					if e.OldIndex != c1 {
						fail("aligner skipped an old element")
					}
					c1++
				case Insert:
					if e.NewIndex != c2 {
						fail("aligner skipped a new element")
					}
					c2++
				case Replace, Modify:
					if e.OldIndex != c1 || e.NewIndex != c2 {
						fail("aligner paired out of order")
					}
					c1++
					c2++
				default:
					fail("aligner emitted " + e.Op.String())
				}
			}
			if c1 != i1+sec.Len1 || c2 != i2+sec.Len2 {
				fail("aligner did not consume its section")
			}
			script = append(script, elems...)
		}
		i1 += sec.Len1
		i2 += sec.Len2
	}
	if i1 != len(before) || i2 != len(after) {
		fail("sections do not cover the inputs")
	}
	return script
}
