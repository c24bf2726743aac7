package collection

import (
	"github.com/roach88/rcc/internal/diff"
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// transitions pairs every snapshot of src with its predecessor. The first
// snapshot is paired with an empty list.
func transitions[T any](src List[T]) rx.Observable[rx.Pair[snapshot.List[T]]] {
	return rx.Pairwise(src.Items(), snapshot.List[T]{})
}

// Changes emits, for every snapshot of src, the edit script from the
// previous snapshot. A nil eq uses snapshot.DefaultEqual.
func Changes[T any](src List[T], eq snapshot.EqualFunc[T]) rx.Observable[diff.Script[T]] {
	return ChangesWith(src, eq, diff.BasicAligner[T]{})
}

// ChangesWith is Changes with a caller-chosen aligner.
func ChangesWith[T any](src List[T], eq snapshot.EqualFunc[T], aligner diff.Aligner[T]) rx.Observable[diff.Script[T]] {
	if eq != nil {
		eq = guard2("equal", eq)
	}
	return rx.Map(transitions(src), func(p rx.Pair[snapshot.List[T]]) diff.Script[T] {
		return diff.ComputeWith(p.Previous, p.Current, eq, aligner)
	})
}

// AddedSet emits the values present in a snapshot but not in its
// predecessor, ignoring duplicates. Empty differences are not emitted.
func AddedSet[T comparable](src List[T]) rx.Observable[snapshot.Set[T]] {
	return setDelta(src, func(prev, cur snapshot.Set[T]) snapshot.Set[T] {
		return cur.Except(prev)
	})
}

// RemovedSet emits the values present in a snapshot's predecessor but not
// in the snapshot. Empty differences are not emitted.
func RemovedSet[T comparable](src List[T]) rx.Observable[snapshot.Set[T]] {
	return setDelta(src, func(prev, cur snapshot.Set[T]) snapshot.Set[T] {
		return prev.Except(cur)
	})
}

func setDelta[T comparable](src List[T], delta func(prev, cur snapshot.Set[T]) snapshot.Set[T]) rx.Observable[snapshot.Set[T]] {
	sets := rx.Map(transitions(src), func(p rx.Pair[snapshot.List[T]]) snapshot.Set[T] {
		return delta(snapshot.ToSet(p.Previous), snapshot.ToSet(p.Current))
	})
	return rx.Filter(sets, func(s snapshot.Set[T]) bool { return !s.IsEmpty() })
}
