package collection

import (
	"fmt"

	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// SourceList is a mutable cell holding a list snapshot. SetSource is the only
// mutation primitive; the convenience mutators compute a new snapshot from
// Source and pass it to SetSource.
//
// Every mutator returns the first error raised while the new snapshot
// propagated through the graph: a *CallbackError for a panicking callback, a
// *ReentrancyError for a feedback loop, or an *rx.UnhandledError when a
// stream error reached a subscriber without an error handler. The source
// itself has already moved to the new snapshot when such an error is
// returned.
type SourceList[T any] struct {
	subject *rx.BehaviorSubject[snapshot.List[T]]
	guard   reentrancyGuard
}

// NewSourceList creates a source holding initial.
func NewSourceList[T any](initial snapshot.List[T], opts ...Option) *SourceList[T] {
	o := buildSourceOptions(opts)
	return &SourceList[T]{
		subject: rx.NewBehaviorSubject(initial),
		guard:   reentrancyGuard{limit: o.maxReentrancy},
	}
}

// NewSourceListOf creates a source holding values.
func NewSourceListOf[T any](values ...T) *SourceList[T] {
	return NewSourceList(snapshot.ListOf(values...))
}

// Items implements List.
func (s *SourceList[T]) Items() rx.Observable[snapshot.List[T]] { return s.subject }

func (*SourceList[T]) isList() {}

// Source returns the current snapshot.
func (s *SourceList[T]) Source() snapshot.List[T] { return s.subject.Value() }

// SetSource replaces the current snapshot and propagates it synchronously.
// Setting the snapshot the source already holds does nothing.
func (s *SourceList[T]) SetSource(next snapshot.List[T]) (err error) {
	if next.Same(s.subject.Value()) {
		return nil
	}
	if err := s.guard.enter(); err != nil {
		return err
	}
	defer s.guard.exit()
	defer RecoverPropagation(&err)

	s.subject.OnNext(next)
	return nil
}

// Add appends v.
func (s *SourceList[T]) Add(v T) error {
	return s.SetSource(s.Source().Add(v))
}

// AddRange appends values.
func (s *SourceList[T]) AddRange(values ...T) error {
	return s.SetSource(s.Source().AddRange(values...))
}

// Remove removes the first element equal to v.
func (s *SourceList[T]) Remove(v T) error {
	return s.SetSource(s.Source().Remove(v, nil))
}

// RemoveRange removes, for each value, the first remaining equal element.
func (s *SourceList[T]) RemoveRange(values ...T) error {
	return s.SetSource(s.Source().RemoveRange(nil, values...))
}

// Replace swaps the first element equal to old for v.
func (s *SourceList[T]) Replace(old, v T) error {
	return s.SetSource(s.Source().Replace(old, v, nil))
}

// ReplaceAt overwrites the element at index i.
func (s *SourceList[T]) ReplaceAt(i int, v T) error {
	cur := s.Source()
	if i < 0 || i >= cur.Len() {
		return fmt.Errorf("replace at %d (len %d): %w", i, cur.Len(), ErrIndexOutOfRange)
	}
	return s.SetSource(cur.SetItem(i, v))
}

// InsertAt inserts v before index i; i may equal the length.
func (s *SourceList[T]) InsertAt(i int, v T) error {
	return s.InsertRangeAt(i, v)
}

// InsertRangeAt inserts values before index i.
func (s *SourceList[T]) InsertRangeAt(i int, values ...T) error {
	cur := s.Source()
	if i < 0 || i > cur.Len() {
		return fmt.Errorf("insert at %d (len %d): %w", i, cur.Len(), ErrIndexOutOfRange)
	}
	return s.SetSource(cur.InsertRange(i, values...))
}

// Clear removes every element.
func (s *SourceList[T]) Clear() error {
	return s.SetSource(snapshot.List[T]{})
}
