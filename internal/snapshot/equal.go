package snapshot

import "reflect"

// EqualFunc reports whether two values are equal.
type EqualFunc[T any] func(a, b T) bool

// DefaultEqual compares a and b with == when their dynamic values are
// comparable and falls back to reflect.DeepEqual otherwise.
func DefaultEqual[T any](a, b T) bool {
	ia, ib := any(a), any(b)
	if ia == nil || ib == nil {
		return ia == ib
	}
	if reflect.ValueOf(ia).Comparable() && reflect.ValueOf(ib).Comparable() {
		return ia == ib
	}
	return reflect.DeepEqual(ia, ib)
}

// Comparable returns == as an EqualFunc.
func Comparable[T comparable]() EqualFunc[T] {
	return func(a, b T) bool { return a == b }
}

func orDefault[T any](eq EqualFunc[T]) EqualFunc[T] {
	if eq == nil {
		return DefaultEqual[T]
	}
	return eq
}
