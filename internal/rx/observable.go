package rx

import "fmt"

// Observer receives values and a terminal error from an Observable.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
}

// Observable is a push-based stream of T.
//
// Subscribe may deliver values synchronously before it returns; callers that
// need the returned Disposable inside OnNext must tolerate that.
type Observable[T any] interface {
	Subscribe(o Observer[T]) Disposable
}

// ObservableFunc adapts a subscribe function to Observable.
type ObservableFunc[T any] func(o Observer[T]) Disposable

// Subscribe calls f.
func (f ObservableFunc[T]) Subscribe(o Observer[T]) Disposable {
	return f(o)
}

// UnhandledError is raised (as a panic) when an error reaches an observer
// that did not register an error handler.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("unhandled stream error: %v", e.Err)
}

func (e *UnhandledError) Unwrap() error {
	return e.Err
}

// Funcs adapts plain functions to Observer. A nil Next ignores values;
// a nil Error panics with *UnhandledError.
type Funcs[T any] struct {
	Next  func(T)
	Error func(error)
}

// OnNext calls f.Next if set.
func (f Funcs[T]) OnNext(v T) {
	if f.Next != nil {
		f.Next(v)
	}
}

// OnError calls f.Error or panics when no handler is set.
func (f Funcs[T]) OnError(err error) {
	if f.Error == nil {
		panic(&UnhandledError{Err: err})
	}
	f.Error(err)
}

// Subscribe subscribes next to o. Errors are unhandled.
func Subscribe[T any](o Observable[T], next func(T)) Disposable {
	return o.Subscribe(Funcs[T]{Next: next})
}

// SubscribeWithError subscribes next and onErr to o.
func SubscribeWithError[T any](o Observable[T], next func(T), onErr func(error)) Disposable {
	return o.Subscribe(Funcs[T]{Next: next, Error: onErr})
}
