package snapshot

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// List is an immutable ordered sequence. The zero value is an empty list.
type List[T any] struct {
	items []T
}

// ListOf returns a list holding a copy of items.
func ListOf[T any](items ...T) List[T] {
	if len(items) == 0 {
		return List[T]{}
	}
	return List[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l List[T]) Len() int { return len(l.items) }

// IsEmpty reports whether the list has no elements.
func (l List[T]) IsEmpty() bool { return len(l.items) == 0 }

// At returns the element at index i. It panics if i is out of range.
func (l List[T]) At(i int) T { return l.items[i] }

// Items returns a copy of the elements.
func (l List[T]) Items() []T { return slices.Clone(l.items) }

// All iterates index/element pairs.
func (l List[T]) All() iter.Seq2[int, T] { return slices.All(l.items) }

// Values iterates the elements in order.
func (l List[T]) Values() iter.Seq[T] { return slices.Values(l.items) }

// Same reports whether l and other share storage, meaning one was returned
// unchanged from a mutator of the other. Two empty lists are the same.
func (l List[T]) Same(other List[T]) bool {
	if len(l.items) != len(other.items) {
		return false
	}
	return len(l.items) == 0 || &l.items[0] == &other.items[0]
}

// Equal reports whether both lists hold equal elements in the same order.
// A nil eq uses DefaultEqual.
func (l List[T]) Equal(other List[T], eq EqualFunc[T]) bool {
	return slices.EqualFunc(l.items, other.items, orDefault(eq))
}

// IndexOf returns the index of the first element equal to v, or -1.
func (l List[T]) IndexOf(v T, eq EqualFunc[T]) int {
	eq = orDefault(eq)
	return slices.IndexFunc(l.items, func(x T) bool { return eq(x, v) })
}

// Contains reports whether some element equals v.
func (l List[T]) Contains(v T, eq EqualFunc[T]) bool {
	return l.IndexOf(v, eq) >= 0
}

// Add appends v.
func (l List[T]) Add(v T) List[T] {
	return List[T]{items: slices.Concat(l.items, []T{v})}
}

// AddRange appends vs.
func (l List[T]) AddRange(vs ...T) List[T] {
	if len(vs) == 0 {
		return l
	}
	return List[T]{items: slices.Concat(l.items, vs)}
}

// Insert places v at index i, shifting later elements up.
func (l List[T]) Insert(i int, v T) List[T] {
	return l.InsertRange(i, v)
}

// InsertRange places vs starting at index i.
func (l List[T]) InsertRange(i int, vs ...T) List[T] {
	if i < 0 || i > len(l.items) {
		panic(fmt.Sprintf("snapshot: insert index %d out of range [0,%d]", i, len(l.items)))
	}
	if len(vs) == 0 {
		return l
	}
	return List[T]{items: slices.Concat(l.items[:i], vs, l.items[i:])}
}

// SetItem replaces the element at index i with v.
func (l List[T]) SetItem(i int, v T) List[T] {
	items := slices.Clone(l.items)
	items[i] = v
	return List[T]{items: items}
}

// RemoveAt removes the element at index i.
func (l List[T]) RemoveAt(i int) List[T] {
	if i < 0 || i >= len(l.items) {
		panic(fmt.Sprintf("snapshot: remove index %d out of range [0,%d)", i, len(l.items)))
	}
	return List[T]{items: slices.Concat(l.items[:i], l.items[i+1:])}
}

// Remove removes the first element equal to v. The receiver is returned when
// no element matches.
func (l List[T]) Remove(v T, eq EqualFunc[T]) List[T] {
	i := l.IndexOf(v, eq)
	if i < 0 {
		return l
	}
	return l.RemoveAt(i)
}

// RemoveRange removes, for each of vs, the first remaining equal element.
func (l List[T]) RemoveRange(eq EqualFunc[T], vs ...T) List[T] {
	out := l
	for _, v := range vs {
		out = out.Remove(v, eq)
	}
	return out
}

// Replace swaps the first element equal to old for v. The receiver is
// returned when no element matches.
func (l List[T]) Replace(old, v T, eq EqualFunc[T]) List[T] {
	i := l.IndexOf(old, eq)
	if i < 0 {
		return l
	}
	return l.SetItem(i, v)
}

// Concat returns l followed by other.
func (l List[T]) Concat(other List[T]) List[T] {
	switch {
	case len(other.items) == 0:
		return l
	case len(l.items) == 0:
		return other
	}
	return List[T]{items: slices.Concat(l.items, other.items)}
}

// Take returns the first n elements. A negative n yields an empty list.
func (l List[T]) Take(n int) List[T] {
	if n >= len(l.items) {
		return l
	}
	if n <= 0 {
		return List[T]{}
	}
	return List[T]{items: slices.Clone(l.items[:n])}
}

// String formats the list like a slice.
func (l List[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}

// Map applies f to every element.
func Map[T, U any](l List[T], f func(T) U) List[U] {
	if len(l.items) == 0 {
		return List[U]{}
	}
	out := make([]U, len(l.items))
	for i, v := range l.items {
		out[i] = f(v)
	}
	return List[U]{items: out}
}

// Concat joins lists in order.
func Concat[T any](lists ...List[T]) List[T] {
	var n int
	for _, l := range lists {
		n += l.Len()
	}
	if n == 0 {
		return List[T]{}
	}
	out := make([]T, 0, n)
	for _, l := range lists {
		out = append(out, l.items...)
	}
	return List[T]{items: out}
}
