package collection

import (
	"log/slog"
	"reflect"
	"slices"

	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// Bind projects every element of src to a sub-list and concatenates the
// sub-lists' current snapshots in outer order.
//
// Each key occurrence in src's snapshot owns one binding node. When src
// changes, occurrences are matched to existing nodes with an equal key
// (first unused match wins); matched nodes keep their sub-list
// subscription and project is not called again for them. Unmatched nodes
// are disposed before project is called for the new keys. The result is
// emitted once per outer change and once per sub-list change, after every
// node has produced a snapshot.
func Bind[T, U any](src List[T], project func(T) List[U], opts ...BindOption[T]) List[U] {
	o := buildBindOptions(opts)
	inner := guard1("bind", func(k T) rx.Observable[snapshot.List[U]] {
		return project(k).Items()
	})
	keys := rx.Map(src.Items(), snapshot.List[T].Items)
	return derive(bindEngine(keys, inner, concatSnapshots[U], o.keyEqual))
}

// BindSelect is Bind followed by a per-pair result selector
// (SelectMany with a result selector).
func BindSelect[T, U, R any](src List[T], project func(T) List[U], selector func(T, U) R, opts ...BindOption[T]) List[R] {
	selector = guard2("select", selector)
	return Bind(src, func(k T) List[R] {
		return Map(project(k), func(u U) R { return selector(k, u) })
	}, opts...)
}

func concatSnapshots[T any](parts []snapshot.List[T]) snapshot.List[T] {
	return snapshot.Concat(parts...)
}

// bindEngine subscribes to project(k) for every key k of the latest outer
// snapshot and emits combine over the inner snapshots in key order.
// A nil keyEq means snapshot.DefaultEqual.
func bindEngine[K, S any](
	outer rx.Observable[[]K],
	project func(K) rx.Observable[S],
	combine func([]S) S,
	keyEq snapshot.EqualFunc[K],
) rx.Observable[S] {
	if keyEq != nil {
		keyEq = guard2("key equal", keyEq)
	}
	return rx.ObservableFunc[S](func(o rx.Observer[S]) rx.Disposable {
		b := &binder[K, S]{
			project: project,
			combine: combine,
			keyEq:   keyEq,
			out:     o,
		}
		// A panic during the first reconcile releases the nodes it created.
		ok := false
		defer func() {
			if !ok {
				b.dispose()
			}
		}()
		d := outer.Subscribe(rx.Funcs[[]K]{Next: b.reconcile, Error: b.fail})
		ok = true
		if b.done {
			d.Dispose()
		} else {
			b.outer = d
		}
		return rx.NewDisposable(b.dispose)
	})
}

// bindNode is the live state of one key occurrence.
type bindNode[K, S any] struct {
	key    K
	sub    rx.Disposable
	latest S
	ready  bool
	live   bool
}

type binder[K, S any] struct {
	project func(K) rx.Observable[S]
	combine func([]S) S
	keyEq   snapshot.EqualFunc[K]
	out     rx.Observer[S]

	outer rx.Disposable
	nodes []*bindNode[K, S]

	reconciling bool
	pending     []K
	hasPending  bool
	done        bool
}

// reconcile brings the node table in line with keys. An outer snapshot that
// arrives while a reconcile is running (because a projected sub-list
// mutated the outer source) is applied after the current one finishes.
func (b *binder[K, S]) reconcile(keys []K) {
	if b.done {
		return
	}
	if b.reconciling {
		b.pending, b.hasPending = keys, true
		return
	}

	func() {
		b.reconciling = true
		defer func() { b.reconciling = false }()
		for {
			b.apply(keys)
			if !b.hasPending || b.done {
				return
			}
			keys, b.pending, b.hasPending = b.pending, nil, false
		}
	}()
	b.emit()
}

func (b *binder[K, S]) apply(keys []K) {
	oldKeys := make([]K, len(b.nodes))
	for i, n := range b.nodes {
		oldKeys[i] = n.key
	}
	matches := matchKeys(oldKeys, keys, b.keyEq)

	next := make([]*bindNode[K, S], len(keys))
	used := make([]bool, len(b.nodes))
	for i, m := range matches {
		if m >= 0 {
			next[i] = b.nodes[m]
			used[m] = true
		}
	}

	disposed := 0
	for i, n := range b.nodes {
		if !used[i] {
			n.release()
			disposed++
		}
	}
	b.nodes = next

	created := 0
	for i, k := range keys {
		if next[i] != nil {
			continue
		}
		n := &bindNode[K, S]{key: k, live: true}
		next[i] = n
		created++
		d := b.project(k).Subscribe(rx.Funcs[S]{
			Next: func(v S) {
				if !n.live {
					return
				}
				n.latest, n.ready = v, true
				b.emit()
			},
			Error: b.fail,
		})
		if n.live && !b.done {
			n.sub = d
		} else {
			d.Dispose()
		}
		if b.done {
			return
		}
	}

	slog.Debug("bind reconcile",
		"keys", len(keys),
		"reused", len(keys)-created,
		"created", created,
		"disposed", disposed)
}

func (n *bindNode[K, S]) release() {
	n.live = false
	if n.sub != nil {
		n.sub.Dispose()
		n.sub = nil
	}
}

// emit publishes the combined snapshot once every node is ready.
func (b *binder[K, S]) emit() {
	if b.done || b.reconciling {
		return
	}
	parts := make([]S, len(b.nodes))
	for i, n := range b.nodes {
		if n == nil || !n.ready {
			return
		}
		parts[i] = n.latest
	}
	b.out.OnNext(b.combine(parts))
}

func (b *binder[K, S]) fail(err error) {
	if b.done {
		return
	}
	b.dispose()
	b.out.OnError(err)
}

// dispose releases the outer subscription and then every node.
func (b *binder[K, S]) dispose() {
	b.done = true
	if b.outer != nil {
		b.outer.Dispose()
		b.outer = nil
	}
	nodes := b.nodes
	b.nodes = nil
	for _, n := range nodes {
		if n != nil {
			n.release()
		}
	}
}

// matchKeys pairs each key with the first unused old key equal to it and
// returns, per key, the old index or -1. A nil eq uses
// snapshot.DefaultEqual with a hash index for comparable keys.
func matchKeys[K any](old, keys []K, eq snapshot.EqualFunc[K]) []int {
	out := make([]int, len(keys))
	if eq != nil {
		used := make([]bool, len(old))
		for i, k := range keys {
			out[i] = -1
			for j, prev := range old {
				if !used[j] && eq(prev, k) {
					used[j] = true
					out[i] = j
					break
				}
			}
		}
		return out
	}

	hashed := make(map[any][]int, len(old))
	var rest []int
	for j, k := range old {
		if a := any(k); hashable(a) {
			hashed[a] = append(hashed[a], j)
		} else {
			rest = append(rest, j)
		}
	}
	for i, k := range keys {
		out[i] = -1
		if a := any(k); hashable(a) {
			if q := hashed[a]; len(q) > 0 {
				out[i] = q[0]
				hashed[a] = q[1:]
			}
			continue
		}
		for r, j := range rest {
			if snapshot.DefaultEqual(old[j], k) {
				out[i] = j
				rest = slices.Delete(rest, r, r+1)
				break
			}
		}
	}
	return out
}

func hashable(v any) bool {
	return v == nil || reflect.ValueOf(v).Comparable()
}
