package collection

import "github.com/roach88/rcc/internal/snapshot"

// DefaultMaxReentrancy is the default limit on nested SetSource calls for
// one source.
const DefaultMaxReentrancy = 32

// Option configures a source collection.
type Option func(*sourceOptions)

type sourceOptions struct {
	maxReentrancy int
}

// WithMaxReentrancy sets how many times a source may be set from inside its
// own propagation before SetSource fails with *ReentrancyError. Values below
// 1 are ignored.
func WithMaxReentrancy(n int) Option {
	return func(o *sourceOptions) {
		if n >= 1 {
			o.maxReentrancy = n
		}
	}
}

func buildSourceOptions(opts []Option) sourceOptions {
	o := sourceOptions{maxReentrancy: DefaultMaxReentrancy}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// BindOption configures Bind and the combinators built on it.
type BindOption[T any] func(*bindOptions[T])

type bindOptions[T any] struct {
	keyEqual snapshot.EqualFunc[T]
}

// WithKeyEqual sets how outer keys are matched to existing binding nodes.
// The default is snapshot.DefaultEqual.
func WithKeyEqual[T any](eq snapshot.EqualFunc[T]) BindOption[T] {
	return func(o *bindOptions[T]) {
		o.keyEqual = eq
	}
}

func buildBindOptions[T any](opts []BindOption[T]) bindOptions[T] {
	var o bindOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
