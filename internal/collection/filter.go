package collection

import (
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// Where keeps the elements for which keep returns true. Each element binds
// to a singleton or an empty sub-list, so keep runs once per new key
// occurrence, not once per snapshot.
func Where[T any](src List[T], keep func(T) bool, opts ...BindOption[T]) List[T] {
	keep = guard1("where", keep)
	return Bind(src, func(v T) List[T] {
		if keep(v) {
			return Of(v)
		}
		return Empty[T]()
	}, opts...)
}

// WhereObservable keeps each element while the stream returned by keep for
// it last emitted true.
func WhereObservable[T any](src List[T], keep func(T) rx.Observable[bool], opts ...BindOption[T]) List[T] {
	keep = guard1("where", keep)
	return Bind(src, func(v T) List[T] {
		return FromObservable(rx.Map(keep(v), func(ok bool) snapshot.List[T] {
			if ok {
				return snapshot.ListOf(v)
			}
			return snapshot.List[T]{}
		}))
	}, opts...)
}

// WhereDynamic filters src with the latest predicate from preds. A new
// predicate re-evaluates every element. The result is defined once preds
// has emitted.
func WhereDynamic[T any](src List[T], preds rx.Observable[func(T) bool]) List[T] {
	return derive(rx.CombineLatest2(src.Items(), preds, func(l snapshot.List[T], keep func(T) bool) snapshot.List[T] {
		keep = guard1("where", keep)
		var out []T
		for v := range l.Values() {
			if keep(v) {
				out = append(out, v)
			}
		}
		return snapshot.ListOf(out...)
	}))
}
