package snapshot

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Set is an immutable set of distinct values. Iteration follows insertion
// order so that derived output is deterministic. The zero value is empty.
type Set[T comparable] struct {
	items []T
	index map[T]struct{}
}

// SetOf returns a set holding the distinct values of items.
func SetOf[T comparable](items ...T) Set[T] {
	return Set[T]{}.AddRange(items...)
}

// ToSet collects the distinct elements of l.
func ToSet[T comparable](l List[T]) Set[T] {
	return SetOf(l.items...)
}

func newSet[T comparable](items []T) Set[T] {
	if len(items) == 0 {
		return Set[T]{}
	}
	index := make(map[T]struct{}, len(items))
	for _, v := range items {
		index[v] = struct{}{}
	}
	return Set[T]{items: items, index: index}
}

// Len returns the number of elements.
func (s Set[T]) Len() int { return len(s.items) }

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool { return len(s.items) == 0 }

// Contains reports whether v is a member.
func (s Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Items returns the members in insertion order.
func (s Set[T]) Items() []T { return slices.Clone(s.items) }

// Values iterates the members in insertion order.
func (s Set[T]) Values() iter.Seq[T] { return slices.Values(s.items) }

// Same reports whether s and other share storage. Two empty sets are the same.
func (s Set[T]) Same(other Set[T]) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	return len(s.items) == 0 || &s.items[0] == &other.items[0]
}

// Add returns s with v added.
func (s Set[T]) Add(v T) Set[T] {
	return s.AddRange(v)
}

// AddRange returns s with every value of vs added.
func (s Set[T]) AddRange(vs ...T) Set[T] {
	var out []T
	seen := map[T]struct{}{}
	for _, v := range vs {
		if s.Contains(v) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return s
	}
	return newSet(slices.Concat(s.items, out))
}

// Union returns the members of either set.
func (s Set[T]) Union(other Set[T]) Set[T] {
	if s.IsEmpty() {
		return other
	}
	return s.AddRange(other.items...)
}

// Remove returns s without v.
func (s Set[T]) Remove(v T) Set[T] {
	if !s.Contains(v) {
		return s
	}
	return s.filter(func(x T) bool { return x != v })
}

// Except returns the members of s that are not in other.
func (s Set[T]) Except(other Set[T]) Set[T] {
	if !s.Overlaps(other) {
		return s
	}
	return s.filter(func(x T) bool { return !other.Contains(x) })
}

// Intersect returns the members of s that are also in other.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	if s.IsSubsetOf(other) {
		return s
	}
	return s.filter(other.Contains)
}

// SymmetricExcept returns the members of exactly one of s and other.
func (s Set[T]) SymmetricExcept(other Set[T]) Set[T] {
	if other.IsEmpty() {
		return s
	}
	return s.Except(other).Union(other.Except(s))
}

func (s Set[T]) filter(keep func(T) bool) Set[T] {
	var out []T
	for _, v := range s.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return newSet(out)
}

// IsSubsetOf reports whether every member of s is in other.
func (s Set[T]) IsSubsetOf(other Set[T]) bool {
	if s.Len() > other.Len() {
		return false
	}
	for _, v := range s.items {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether every member of other is in s.
func (s Set[T]) IsSupersetOf(other Set[T]) bool { return other.IsSubsetOf(s) }

// IsProperSubsetOf reports whether s is a subset of other and smaller.
func (s Set[T]) IsProperSubsetOf(other Set[T]) bool {
	return s.Len() < other.Len() && s.IsSubsetOf(other)
}

// IsProperSupersetOf reports whether s is a superset of other and larger.
func (s Set[T]) IsProperSupersetOf(other Set[T]) bool { return other.IsProperSubsetOf(s) }

// Overlaps reports whether s and other share a member.
func (s Set[T]) Overlaps(other Set[T]) bool {
	small, large := s, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	for _, v := range small.items {
		if large.Contains(v) {
			return true
		}
	}
	return false
}

// SetEquals reports whether s and other have the same members, in any order.
func (s Set[T]) SetEquals(other Set[T]) bool {
	return s.Len() == other.Len() && s.IsSubsetOf(other)
}

// String formats the members in iteration order.
func (s Set[T]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte('}')
	return b.String()
}

// MapSet applies f to every member; results that collide are merged.
func MapSet[T, U comparable](s Set[T], f func(T) U) Set[U] {
	out := make([]U, 0, s.Len())
	for _, v := range s.items {
		out = append(out, f(v))
	}
	return SetOf(out...)
}

// Union joins sets, keeping first-seen order.
func Union[T comparable](sets ...Set[T]) Set[T] {
	var out Set[T]
	for _, s := range sets {
		out = out.Union(s)
	}
	return out
}
