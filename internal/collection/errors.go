package collection

import (
	"errors"
	"fmt"

	"github.com/roach88/rcc/internal/rx"
)

// ErrEmptySequence is delivered to subscribers of Min, Max and unseeded
// Aggregate when the snapshot is empty.
var ErrEmptySequence = errors.New("sequence contains no elements")

// ErrIndexOutOfRange is returned by index-based source mutations.
var ErrIndexOutOfRange = errors.New("index out of range")

// CallbackError wraps a panic raised by a caller-supplied function (a map
// function, predicate, projector, reducer or key comparer) during
// propagation. It is returned by the SetSource call that started the
// propagation.
type CallbackError struct {
	Op    string // combinator whose callback failed, e.g. "map"
	Value any    // recovered panic value
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s callback panicked: %v", e.Op, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *CallbackError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ReentrancyError is returned when a source is set recursively from its own
// propagation more often than the configured limit allows. It indicates a
// feedback loop in the graph.
type ReentrancyError struct {
	Depth int
	Limit int
}

func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("source re-entered %d times (limit %d): feedback loop in collection graph", e.Depth, e.Limit)
}

// IsCallbackError reports whether err is or wraps a *CallbackError.
func IsCallbackError(err error) bool {
	var cbErr *CallbackError
	return errors.As(err, &cbErr)
}

// IsReentrancyError reports whether err is or wraps a *ReentrancyError.
func IsReentrancyError(err error) bool {
	var reErr *ReentrancyError
	return errors.As(err, &reErr)
}

// IsEmptySequence reports whether err is or wraps ErrEmptySequence.
func IsEmptySequence(err error) bool {
	return errors.Is(err, ErrEmptySequence)
}

// propagationError converts a value recovered during propagation into the
// error returned to the mutating caller. ok is false for panics that are not
// part of the propagation contract; those keep unwinding.
func propagationError(r any) (err error, ok bool) {
	switch e := r.(type) {
	case *CallbackError:
		return e, true
	case *ReentrancyError:
		return e, true
	case *rx.UnhandledError:
		return e, true
	}
	return nil, false
}

// wrapPanic tags a recovered callback panic with the combinator name.
// Values that are already propagation errors pass through unchanged so
// nested graphs report the innermost failure.
func wrapPanic(op string, r any) any {
	if _, ok := propagationError(r); ok {
		return r
	}
	return &CallbackError{Op: op, Value: r}
}
