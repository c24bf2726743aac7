package collection

import (
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// List is a dynamic ordered collection. Subscribing to Items delivers the
// current snapshot and then every later snapshot.
//
// The implementations are *SourceList and the derived lists returned by the
// combinators in this package.
type List[T any] interface {
	Items() rx.Observable[snapshot.List[T]]
	isList()
}

// derivedList is a list defined by a snapshot stream. The stream is shared
// so that several subscribers do not recompute upstream combinators.
type derivedList[T any] struct {
	items rx.Observable[snapshot.List[T]]
}

func (d *derivedList[T]) Items() rx.Observable[snapshot.List[T]] { return d.items }

func (*derivedList[T]) isList() {}

func derive[T any](o rx.Observable[snapshot.List[T]]) List[T] {
	return &derivedList[T]{items: rx.Share(o)}
}

// FromObservable wraps a snapshot stream as a list. The list's snapshot is
// defined once o has emitted.
func FromObservable[T any](o rx.Observable[snapshot.List[T]]) List[T] {
	return derive(o)
}

// Const returns a list whose snapshot is always items.
func Const[T any](items snapshot.List[T]) List[T] {
	return &derivedList[T]{items: rx.Return(items)}
}

// Of returns a constant list of the given values.
func Of[T any](values ...T) List[T] {
	return Const(snapshot.ListOf(values...))
}

// Empty returns a constant empty list.
func Empty[T any]() List[T] {
	return Const(snapshot.List[T]{})
}

// Singleton returns a list holding exactly the latest value of o.
func Singleton[T any](o rx.Observable[T]) List[T] {
	return derive(rx.Map(o, func(v T) snapshot.List[T] { return snapshot.ListOf(v) }))
}

// Switch follows the list most recently emitted by lists. Its snapshot is
// defined once lists has emitted and the current list has produced a
// snapshot.
func Switch[T any](lists rx.Observable[List[T]]) List[T] {
	return derive(rx.Switch(rx.Map(lists, List[T].Items)))
}

// BindTo copies every snapshot of src into target until the returned
// Disposable is disposed. An error from the initial copy is returned; later
// failures propagate to whoever set the upstream source.
func BindTo[T any](src List[T], target *SourceList[T]) (d rx.Disposable, err error) {
	defer RecoverPropagation(&err)
	return rx.Subscribe(src.Items(), func(items snapshot.List[T]) {
		if err := target.SetSource(items); err != nil {
			panic(err)
		}
	}), nil
}

// RecoverPropagation stores a recovered propagation error (*CallbackError,
// *ReentrancyError or *rx.UnhandledError) in *errp and lets any other panic
// continue. It must be deferred directly by code that subscribes to a
// collection outside of a source mutation.
func RecoverPropagation(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := propagationError(r); ok {
		*errp = err
		return
	}
	panic(r)
}
