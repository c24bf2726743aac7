package collection

import (
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// Set is a dynamic set. Subscribing to Items delivers the current snapshot
// and then every later snapshot.
type Set[T comparable] interface {
	Items() rx.Observable[snapshot.Set[T]]
	isSet()
}

type derivedSet[T comparable] struct {
	items rx.Observable[snapshot.Set[T]]
}

func (d *derivedSet[T]) Items() rx.Observable[snapshot.Set[T]] { return d.items }

func (*derivedSet[T]) isSet() {}

func deriveSet[T comparable](o rx.Observable[snapshot.Set[T]]) Set[T] {
	return &derivedSet[T]{items: rx.Share(o)}
}

// ConstSet returns a set whose snapshot is always items.
func ConstSet[T comparable](items snapshot.Set[T]) Set[T] {
	return &derivedSet[T]{items: rx.Return(items)}
}

// SetFromObservable wraps a snapshot stream as a set.
func SetFromObservable[T comparable](o rx.Observable[snapshot.Set[T]]) Set[T] {
	return deriveSet(o)
}

// EmptySet returns a constant empty set.
func EmptySet[T comparable]() Set[T] {
	return ConstSet(snapshot.Set[T]{})
}

// Union emits the union of a's and b's snapshots whenever either changes.
func Union[T comparable](a, b Set[T]) Set[T] {
	return deriveSet(rx.CombineLatest2(a.Items(), b.Items(), snapshot.Set[T].Union))
}

// UnionAll unions sets as a balanced tree of pairwise unions.
func UnionAll[T comparable](sets ...Set[T]) Set[T] {
	switch len(sets) {
	case 0:
		return EmptySet[T]()
	case 1:
		return sets[0]
	}
	mid := len(sets) / 2
	return Union(UnionAll(sets[:mid]...), UnionAll(sets[mid:]...))
}

// BindSet projects every member of src to a sub-set and unions the
// sub-sets' current snapshots. Node reuse follows Bind.
func BindSet[T, U comparable](src Set[T], project func(T) Set[U], opts ...BindOption[T]) Set[U] {
	o := buildBindOptions(opts)
	inner := guard1("bind", func(k T) rx.Observable[snapshot.Set[U]] {
		return project(k).Items()
	})
	keys := rx.Map(src.Items(), snapshot.Set[T].Items)
	return deriveSet(bindEngine(keys, inner, unionSnapshots[U], o.keyEqual))
}

func unionSnapshots[T comparable](parts []snapshot.Set[T]) snapshot.Set[T] {
	return snapshot.Union(parts...)
}

// MapSet applies f to every member; colliding results merge.
func MapSet[T, U comparable](src Set[T], f func(T) U) Set[U] {
	f = guard1("map", f)
	return deriveSet(rx.Map(src.Items(), func(s snapshot.Set[T]) snapshot.Set[U] {
		return snapshot.MapSet(s, f)
	}))
}

// WhereSet keeps the members for which keep returns true.
func WhereSet[T comparable](src Set[T], keep func(T) bool) Set[T] {
	keep = guard1("where", keep)
	return BindSet(src, func(v T) Set[T] {
		if keep(v) {
			return ConstSet(snapshot.SetOf(v))
		}
		return EmptySet[T]()
	})
}

// SwitchSet follows the set most recently emitted by sets.
func SwitchSet[T comparable](sets rx.Observable[Set[T]]) Set[T] {
	return deriveSet(rx.Switch(rx.Map(sets, Set[T].Items)))
}

// ToSet exposes the distinct elements of list as a set.
func ToSet[T comparable](list List[T]) Set[T] {
	return deriveSet(rx.Map(list.Items(), snapshot.ToSet[T]))
}
