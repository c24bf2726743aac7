package collection

import (
	"golang.org/x/exp/constraints"

	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// Number is the element constraint of Sum.
type Number interface {
	constraints.Integer | constraints.Float
}

// reduce re-evaluates f on every snapshot of src. An error from f is
// delivered to the subscriber and ends the stream.
func reduce[T, R any](src List[T], f func(snapshot.List[T]) (R, error)) rx.Observable[R] {
	return rx.ObservableFunc[R](func(o rx.Observer[R]) rx.Disposable {
		var upstream rx.Disposable
		done := false
		stop := func(err error) {
			if done {
				return
			}
			done = true
			if upstream != nil {
				upstream.Dispose()
			}
			o.OnError(err)
		}
		d := src.Items().Subscribe(rx.Funcs[snapshot.List[T]]{
			Next: func(l snapshot.List[T]) {
				if done {
					return
				}
				r, err := f(l)
				if err != nil {
					stop(err)
					return
				}
				o.OnNext(r)
			},
			Error: stop,
		})
		if done {
			d.Dispose()
			return rx.Empty()
		}
		upstream = d
		return d
	})
}

// Aggregate folds each snapshot with f, starting from its first element.
// An empty snapshot ends the stream with ErrEmptySequence.
func Aggregate[T any](src List[T], f func(acc, v T) T) rx.Observable[T] {
	f = guard2("aggregate", f)
	return reduce(src, func(l snapshot.List[T]) (T, error) {
		var acc T
		if l.IsEmpty() {
			return acc, ErrEmptySequence
		}
		acc = l.At(0)
		for i := 1; i < l.Len(); i++ {
			acc = f(acc, l.At(i))
		}
		return acc, nil
	})
}

// AggregateSeed folds each snapshot with f, starting from seed. It is
// defined for empty snapshots.
func AggregateSeed[T, U any](src List[T], seed U, f func(acc U, v T) U) rx.Observable[U] {
	f = guard2("aggregate", f)
	return reduce(src, func(l snapshot.List[T]) (U, error) {
		acc := seed
		for v := range l.Values() {
			acc = f(acc, v)
		}
		return acc, nil
	})
}

// Sum totals each snapshot. The sum of an empty snapshot is zero.
func Sum[N Number](src List[N]) rx.Observable[N] {
	return AggregateSeed(src, N(0), func(acc, v N) N { return acc + v })
}

// SumBy totals f over each snapshot.
func SumBy[T any, N Number](src List[T], f func(T) N) rx.Observable[N] {
	f = guard1("sum", f)
	return AggregateSeed(src, N(0), func(acc N, v T) N { return acc + f(v) })
}

// Min emits the smallest element of each snapshot, or ErrEmptySequence.
func Min[T constraints.Ordered](src List[T]) rx.Observable[T] {
	return MinBy(src, func(v T) T { return v })
}

// Max emits the largest element of each snapshot, or ErrEmptySequence.
func Max[T constraints.Ordered](src List[T]) rx.Observable[T] {
	return MaxBy(src, func(v T) T { return v })
}

// MinBy emits the first element with the smallest key.
func MinBy[T any, K constraints.Ordered](src List[T], key func(T) K) rx.Observable[T] {
	return extremeBy(src, guard1("min", key), func(a, b K) bool { return a < b })
}

// MaxBy emits the first element with the largest key.
func MaxBy[T any, K constraints.Ordered](src List[T], key func(T) K) rx.Observable[T] {
	return extremeBy(src, guard1("max", key), func(a, b K) bool { return a > b })
}

func extremeBy[T any, K constraints.Ordered](src List[T], key func(T) K, better func(a, b K) bool) rx.Observable[T] {
	return reduce(src, func(l snapshot.List[T]) (T, error) {
		var best T
		if l.IsEmpty() {
			return best, ErrEmptySequence
		}
		best = l.At(0)
		bestKey := key(best)
		for i := 1; i < l.Len(); i++ {
			if k := key(l.At(i)); better(k, bestKey) {
				best, bestKey = l.At(i), k
			}
		}
		return best, nil
	})
}

// Any reports, per snapshot, whether some element satisfies pred.
func Any[T any](src List[T], pred func(T) bool) rx.Observable[bool] {
	pred = guard1("any", pred)
	return reduce(src, func(l snapshot.List[T]) (bool, error) {
		for v := range l.Values() {
			if pred(v) {
				return true, nil
			}
		}
		return false, nil
	})
}

// All reports, per snapshot, whether every element satisfies pred. It is
// true for an empty snapshot.
func All[T any](src List[T], pred func(T) bool) rx.Observable[bool] {
	pred = guard1("all", pred)
	return reduce(src, func(l snapshot.List[T]) (bool, error) {
		for v := range l.Values() {
			if !pred(v) {
				return false, nil
			}
		}
		return true, nil
	})
}

// Count emits the length of each snapshot.
func Count[T any](src List[T]) rx.Observable[int] {
	return reduce(src, func(l snapshot.List[T]) (int, error) {
		return l.Len(), nil
	})
}
