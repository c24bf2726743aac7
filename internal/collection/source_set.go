package collection

import (
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// SourceSet is a mutable cell holding a set snapshot. Its mutators follow
// the same propagation and error contract as SourceList.
type SourceSet[T comparable] struct {
	subject *rx.BehaviorSubject[snapshot.Set[T]]
	guard   reentrancyGuard
}

// NewSourceSet creates a source holding initial.
func NewSourceSet[T comparable](initial snapshot.Set[T], opts ...Option) *SourceSet[T] {
	o := buildSourceOptions(opts)
	return &SourceSet[T]{
		subject: rx.NewBehaviorSubject(initial),
		guard:   reentrancyGuard{limit: o.maxReentrancy},
	}
}

// NewSourceSetOf creates a source holding the distinct values.
func NewSourceSetOf[T comparable](values ...T) *SourceSet[T] {
	return NewSourceSet(snapshot.SetOf(values...))
}

// Items implements Set.
func (s *SourceSet[T]) Items() rx.Observable[snapshot.Set[T]] { return s.subject }

func (*SourceSet[T]) isSet() {}

// Source returns the current snapshot.
func (s *SourceSet[T]) Source() snapshot.Set[T] { return s.subject.Value() }

// SetSource replaces the current snapshot and propagates it synchronously.
func (s *SourceSet[T]) SetSource(next snapshot.Set[T]) (err error) {
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

// Add adds v.
func (s *SourceSet[T]) Add(v T) error { return s.SetSource(s.Source().Add(v)) }

// AddRange adds values.
func (s *SourceSet[T]) AddRange(values ...T) error {
	return s.SetSource(s.Source().AddRange(values...))
}

// Remove removes v.
func (s *SourceSet[T]) Remove(v T) error { return s.SetSource(s.Source().Remove(v)) }

// Clear removes every member.
func (s *SourceSet[T]) Clear() error { return s.SetSource(snapshot.Set[T]{}) }

// UnionWith adds every member of other.
func (s *SourceSet[T]) UnionWith(other snapshot.Set[T]) error {
	return s.SetSource(s.Source().Union(other))
}

// IntersectWith keeps only members that are also in other.
func (s *SourceSet[T]) IntersectWith(other snapshot.Set[T]) error {
	return s.SetSource(s.Source().Intersect(other))
}

// ExceptWith removes every member of other.
func (s *SourceSet[T]) ExceptWith(other snapshot.Set[T]) error {
	return s.SetSource(s.Source().Except(other))
}

// SymmetricExceptWith keeps members of exactly one of the source and other.
func (s *SourceSet[T]) SymmetricExceptWith(other snapshot.Set[T]) error {
	return s.SetSource(s.Source().SymmetricExcept(other))
}

// Contains reports whether v is currently a member.
func (s *SourceSet[T]) Contains(v T) bool { return s.Source().Contains(v) }

// Count returns the current number of members.
func (s *SourceSet[T]) Count() int { return s.Source().Len() }

// IsSubsetOf reports whether the current snapshot is a subset of other.
func (s *SourceSet[T]) IsSubsetOf(other snapshot.Set[T]) bool {
	return s.Source().IsSubsetOf(other)
}

// IsSupersetOf reports whether the current snapshot is a superset of other.
func (s *SourceSet[T]) IsSupersetOf(other snapshot.Set[T]) bool {
	return s.Source().IsSupersetOf(other)
}

// IsProperSubsetOf reports whether the current snapshot is a proper subset
// of other.
func (s *SourceSet[T]) IsProperSubsetOf(other snapshot.Set[T]) bool {
	return s.Source().IsProperSubsetOf(other)
}

// IsProperSupersetOf reports whether the current snapshot is a proper
// superset of other.
func (s *SourceSet[T]) IsProperSupersetOf(other snapshot.Set[T]) bool {
	return s.Source().IsProperSupersetOf(other)
}

// Overlaps reports whether the current snapshot shares a member with other.
func (s *SourceSet[T]) Overlaps(other snapshot.Set[T]) bool {
	return s.Source().Overlaps(other)
}

// SetEquals reports whether the current snapshot has exactly other's
// members.
func (s *SourceSet[T]) SetEquals(other snapshot.Set[T]) bool {
	return s.Source().SetEquals(other)
}
