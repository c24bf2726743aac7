package rx

// Subject multicasts every value it receives to its current observers.
//
// After OnError the subject is terminated: current observers receive the
// error, later subscribers receive it immediately, and further values are
// dropped.
type Subject[T any] struct {
	observers []*subscription[T]
	err       error
	done      bool
	gen       uint64
}

type subscription[T any] struct {
	observer Observer[T]
	active   bool
}

// NewSubject creates an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers o for future values.
func (s *Subject[T]) Subscribe(o Observer[T]) Disposable {
	if s.done {
		o.OnError(s.err)
		return Empty()
	}
	return s.add(o)
}

func (s *Subject[T]) add(o Observer[T]) Disposable {
	sub := &subscription[T]{observer: o, active: true}
	s.observers = append(s.observers, sub)
	return NewDisposable(func() { s.remove(sub) })
}

func (s *Subject[T]) remove(sub *subscription[T]) {
	sub.active = false
	for i, cur := range s.observers {
		if cur == sub {
			// Copy-on-write: an emission in flight iterates the old slice.
			next := make([]*subscription[T], 0, len(s.observers)-1)
			next = append(next, s.observers[:i]...)
			next = append(next, s.observers[i+1:]...)
			s.observers = next
			return
		}
	}
}

// OnNext delivers v to every observer subscribed when the call began
// and still subscribed when its turn comes.
//
// A value pushed from inside an observer supersedes v: it reaches every
// observer itself, and the observers still waiting for v are skipped.
func (s *Subject[T]) OnNext(v T) {
	if s.done {
		return
	}
	s.gen++
	gen := s.gen
	for _, sub := range s.observers {
		if s.gen != gen || s.done {
			return
		}
		if sub.active {
			sub.observer.OnNext(v)
		}
	}
}

// OnError terminates the subject.
func (s *Subject[T]) OnError(err error) {
	if s.done {
		return
	}
	s.done = true
	s.err = err
	observers := s.observers
	s.observers = nil
	for _, sub := range observers {
		if sub.active {
			sub.active = false
			sub.observer.OnError(err)
		}
	}
}

// HasObservers reports whether any observer is subscribed.
func (s *Subject[T]) HasObservers() bool {
	return len(s.observers) > 0
}

// BehaviorSubject is a Subject that always holds a current value and
// replays it synchronously to each new subscriber.
type BehaviorSubject[T any] struct {
	Subject[T]
	value T
}

// NewBehaviorSubject creates a BehaviorSubject holding initial.
func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{value: initial}
}

// Value returns the current value.
func (b *BehaviorSubject[T]) Value() T {
	return b.value
}

// Subscribe registers o and replays the current value to it.
//
// The observer is registered before the replay so that a value pushed
// from inside the replay callback is not lost. If the replay panics, o is
// unregistered before the panic continues.
func (b *BehaviorSubject[T]) Subscribe(o Observer[T]) Disposable {
	if b.done {
		o.OnError(b.err)
		return Empty()
	}
	d := b.add(o)
	ok := false
	defer func() {
		if !ok {
			d.Dispose()
		}
	}()
	o.OnNext(b.value)
	ok = true
	return d
}

// OnNext stores v as the current value and delivers it.
func (b *BehaviorSubject[T]) OnNext(v T) {
	if b.done {
		return
	}
	b.value = v
	b.Subject.OnNext(v)
}
