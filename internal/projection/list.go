package projection

import (
	"fmt"
	"slices"

	"github.com/roach88/rcc/internal/rx"
)

// ChangeKind is the kind of one in-place mutation.
type ChangeKind int

const (
	// ChangeInsert adds New at Index.
	ChangeInsert ChangeKind = iota
	// ChangeRemove removes Old from Index.
	ChangeRemove
	// ChangeReplace overwrites Old with New at Index.
	ChangeReplace
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	}
	return fmt.Sprintf("change(%d)", int(k))
}

// Change describes one mutation of an ObservableList.
type Change[T any] struct {
	Kind  ChangeKind
	Index int
	Old   T
	New   T
}

// Mutable is the in-place mutation surface Apply drives.
type Mutable[T any] interface {
	Len() int
	Insert(i int, v T)
	RemoveAt(i int)
	Set(i int, v T)
}

// View is the read-only surface of an ObservableList.
type View[T any] interface {
	Len() int
	At(i int) T
	Items() []T
	OnChange(fn func(Change[T])) rx.Disposable
}

// ObservableList is a mutable list that reports every mutation to its
// change handlers, after the mutation has been applied.
type ObservableList[T any] struct {
	items    []T
	handlers []*handler[T]
}

type handler[T any] struct {
	fn     func(Change[T])
	active bool
}

// NewObservableList creates a list holding a copy of items.
func NewObservableList[T any](items ...T) *ObservableList[T] {
	return &ObservableList[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l *ObservableList[T]) Len() int { return len(l.items) }

// At returns the element at index i.
func (l *ObservableList[T]) At(i int) T { return l.items[i] }

// Items returns a copy of the elements.
func (l *ObservableList[T]) Items() []T { return slices.Clone(l.items) }

// Insert places v at index i.
func (l *ObservableList[T]) Insert(i int, v T) {
	l.items = slices.Insert(l.items, i, v)
	l.notify(Change[T]{Kind: ChangeInsert, Index: i, New: v})
}

// RemoveAt removes the element at index i.
func (l *ObservableList[T]) RemoveAt(i int) {
	old := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.notify(Change[T]{Kind: ChangeRemove, Index: i, Old: old})
}

// Set overwrites the element at index i.
func (l *ObservableList[T]) Set(i int, v T) {
	old := l.items[i]
	l.items[i] = v
	l.notify(Change[T]{Kind: ChangeReplace, Index: i, Old: old, New: v})
}

// OnChange registers fn for future changes. Disposing the result
// unregisters it.
func (l *ObservableList[T]) OnChange(fn func(Change[T])) rx.Disposable {
	h := &handler[T]{fn: fn, active: true}
	l.handlers = append(l.handlers, h)
	return rx.NewDisposable(func() {
		h.active = false
		l.handlers = slices.DeleteFunc(slices.Clone(l.handlers), func(x *handler[T]) bool { return x == h })
	})
}

func (l *ObservableList[T]) notify(c Change[T]) {
	for _, h := range l.handlers {
		if h.active {
			h.fn(c)
		}
	}
}
