package collection

import (
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// Map applies f to every element of every snapshot of src.
func Map[T, U any](src List[T], f func(T) U) List[U] {
	f = guard1("map", f)
	return derive(rx.Map(src.Items(), func(l snapshot.List[T]) snapshot.List[U] {
		return snapshot.Map(l, f)
	}))
}

// FlatMapSlice replaces every element of src with the elements of f(element),
// in order. f is called for every element of every snapshot.
func FlatMapSlice[T, U any](src List[T], f func(T) []U) List[U] {
	f = guard1("flat map", f)
	return derive(rx.Map(src.Items(), func(l snapshot.List[T]) snapshot.List[U] {
		var out []U
		for v := range l.Values() {
			out = append(out, f(v)...)
		}
		return snapshot.ListOf(out...)
	}))
}

// Concat emits a's snapshot followed by b's whenever either changes.
func Concat[T any](a, b List[T]) List[T] {
	return derive(rx.CombineLatest2(a.Items(), b.Items(), snapshot.List[T].Concat))
}

// ConcatAll concatenates lists in order. The lists are combined pairwise as
// a balanced tree, so a change in one input recomputes O(log n) joins.
func ConcatAll[T any](lists ...List[T]) List[T] {
	switch len(lists) {
	case 0:
		return Empty[T]()
	case 1:
		return lists[0]
	}
	mid := len(lists) / 2
	return Concat(ConcatAll(lists[:mid]...), ConcatAll(lists[mid:]...))
}

// Take truncates every snapshot of src to its first n elements.
func Take[T any](src List[T], n int) List[T] {
	return derive(rx.Map(src.Items(), func(l snapshot.List[T]) snapshot.List[T] {
		return l.Take(n)
	}))
}

// TakeDynamic truncates src to the latest value of n, re-truncating when
// either src or n changes. The result is defined once n has emitted.
func TakeDynamic[T any](src List[T], n rx.Observable[int]) List[T] {
	return derive(rx.CombineLatest2(src.Items(), n, snapshot.List[T].Take))
}
