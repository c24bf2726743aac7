package collection

import (
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// snapshotValue is satisfied by snapshot.List and snapshot.Set.
type snapshotValue[S any] interface {
	Same(other S) bool
}

// Subscription holds the latest snapshot of a collection until disposed.
type Subscription[S snapshotValue[S]] struct {
	items    S
	err      error
	sub      rx.Disposable
	handlers []*changeHandler[S]
}

type changeHandler[S any] struct {
	fn     func(S)
	active bool
}

// Subscribe attaches to list. The subscription's Items is the list's current
// snapshot from the moment Subscribe returns.
//
// A failure during the initial subscription, or a stream error later on, is
// recorded and reported by Err; the subscription then stops updating.
func Subscribe[T any](list List[T]) *Subscription[snapshot.List[T]] {
	return subscribe(list.Items())
}

// SubscribeSet is Subscribe for sets.
func SubscribeSet[T comparable](set Set[T]) *Subscription[snapshot.Set[T]] {
	return subscribe(set.Items())
}

// A panic during Subscribe has already unwound every registration made on
// the way, so a failed subscription holds nothing to release.
func subscribe[S snapshotValue[S]](items rx.Observable[S]) (s *Subscription[S]) {
	s = &Subscription[S]{}
	defer RecoverPropagation(&s.err)
	s.sub = items.Subscribe(rx.Funcs[S]{
		Next: s.set,
		Error: func(err error) {
			if s.err == nil {
				s.err = err
			}
		},
	})
	return s
}

func (s *Subscription[S]) set(v S) {
	if s.err != nil || v.Same(s.items) {
		return
	}
	s.items = v
	for _, h := range s.handlers {
		if h.active {
			h.fn(v)
		}
	}
}

// Items returns the latest snapshot.
func (s *Subscription[S]) Items() S { return s.items }

// Err returns the error that ended the subscription, if any.
func (s *Subscription[S]) Err() error { return s.err }

// OnChange registers fn to run whenever Items changes. Disposing the result
// unregisters it.
func (s *Subscription[S]) OnChange(fn func(S)) rx.Disposable {
	h := &changeHandler[S]{fn: fn, active: true}
	s.handlers = append(s.handlers, h)
	return rx.NewDisposable(func() {
		h.active = false
		for i, cur := range s.handlers {
			if cur == h {
				s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
				return
			}
		}
	})
}

// Dispose ends the subscription. It is safe to call more than once.
func (s *Subscription[S]) Dispose() {
	if s.sub != nil {
		s.sub.Dispose()
	}
}
