package harness

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/rcc/internal/collection"
	"github.com/roach88/rcc/internal/diff"
	"github.com/roach88/rcc/internal/ir"
	"github.com/roach88/rcc/internal/projection"
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// recorder collects trace events in emission order.
type recorder struct {
	clock *DeterministicClock
	step  int
	trace []ir.TraceEvent
}

func newRecorder() *recorder {
	return &recorder{clock: NewDeterministicClock(), trace: []ir.TraceEvent{}}
}

func (r *recorder) record(e ir.TraceEvent) {
	e.Seq = r.clock.Next()
	e.Step = r.step
	r.trace = append(r.trace, e)
}

// observer watches one observed node.
type observer interface {
	// current returns the node's latest snapshot or value.
	current() ir.Values
	// check reports an inconsistency between the node and its projection.
	check() error
	err() error
	dispose()
}

func observe(g *graph, name string, rec *recorder) (observer, error) {
	if l, ok := g.lists[name]; ok {
		return observeList(name, l, rec)
	}
	if s, ok := g.sets[name]; ok {
		return observeSet(name, s, rec)
	}
	if v, ok := g.values[name]; ok {
		return observeValue(name, v, rec)
	}
	return nil, fmt.Errorf("node %q is not in the graph", name)
}

type listObserver struct {
	name string
	sub  *collection.Subscription[snapshot.List[ir.Value]]
	proj *projection.Projection[ir.Value]
	subs *rx.Composite
}

func observeList(name string, l collection.List[ir.Value], rec *recorder) (o *listObserver, err error) {
	o = &listObserver{name: name, subs: rx.NewComposite()}
	defer func() {
		if err != nil {
			o.dispose()
		}
	}()
	defer collection.RecoverPropagation(&err)

	o.sub = collection.Subscribe(l)
	if err := o.sub.Err(); err != nil {
		return o, err
	}
	rec.record(ir.TraceEvent{Node: name, Kind: ir.EventSnapshot, Values: o.sub.Items().Items()})
	o.subs.Add(o.sub.OnChange(func(items snapshot.List[ir.Value]) {
		rec.record(ir.TraceEvent{Node: name, Kind: ir.EventSnapshot, Values: items.Items()})
	}))

	o.subs.Add(rx.Subscribe(collection.Changes[ir.Value](l, nil), func(script diff.Script[ir.Value]) {
		if script.IsIdentity() {
			return
		}
		rec.record(ir.TraceEvent{Node: name, Kind: ir.EventEdit, Edits: toEdits(script)})
	}))
	o.subs.Add(rx.Subscribe(collection.AddedSet(l), func(s snapshot.Set[ir.Value]) {
		rec.record(ir.TraceEvent{Node: name, Kind: ir.EventAdded, Values: ir.SortValues(s.Items())})
	}))
	o.subs.Add(rx.Subscribe(collection.RemovedSet(l), func(s snapshot.Set[ir.Value]) {
		rec.record(ir.TraceEvent{Node: name, Kind: ir.EventRemoved, Values: ir.SortValues(s.Items())})
	}))

	o.proj = projection.New[ir.Value](l, nil)
	if err := o.proj.Err(); err != nil {
		return o, err
	}
	return o, nil
}

func (o *listObserver) current() ir.Values { return o.sub.Items().Items() }

func (o *listObserver) check() error {
	want := o.sub.Items().Items()
	got := o.proj.List().Items()
	if len(want) == 0 && len(got) == 0 {
		return nil
	}
	if d := cmp.Diff(want, got); d != "" {
		return fmt.Errorf("node %q: projection diverged from snapshot (-snapshot +projection):\n%s", o.name, d)
	}
	return nil
}

func (o *listObserver) err() error {
	if err := o.sub.Err(); err != nil {
		return err
	}
	return o.proj.Err()
}

func (o *listObserver) dispose() {
	o.subs.Dispose()
	if o.sub != nil {
		o.sub.Dispose()
	}
	if o.proj != nil {
		o.proj.Dispose()
	}
}

type setObserver struct {
	sub  *collection.Subscription[snapshot.Set[ir.Value]]
	subs *rx.Composite
}

func observeSet(name string, s collection.Set[ir.Value], rec *recorder) (o *setObserver, err error) {
	o = &setObserver{subs: rx.NewComposite()}
	defer collection.RecoverPropagation(&err)

	o.sub = collection.SubscribeSet(s)
	if err := o.sub.Err(); err != nil {
		o.dispose()
		return o, err
	}
	rec.record(ir.TraceEvent{Node: name, Kind: ir.EventSnapshot, Values: o.current()})
	o.subs.Add(o.sub.OnChange(func(items snapshot.Set[ir.Value]) {
		rec.record(ir.TraceEvent{Node: name, Kind: ir.EventSnapshot, Values: ir.SortValues(items.Items())})
	}))
	return o, nil
}

func (o *setObserver) current() ir.Values { return ir.SortValues(o.sub.Items().Items()) }
func (o *setObserver) check() error       { return nil }
func (o *setObserver) err() error         { return o.sub.Err() }

func (o *setObserver) dispose() {
	o.subs.Dispose()
	if o.sub != nil {
		o.sub.Dispose()
	}
}

// valueObserver watches an aggregate. Repeated equal values are recorded
// once.
type valueObserver struct {
	last    ir.Value
	has     bool
	failure error
	sub     rx.Disposable
}

func observeValue(name string, v rx.Observable[ir.Value], rec *recorder) (o *valueObserver, err error) {
	o = &valueObserver{}
	defer collection.RecoverPropagation(&err)

	o.sub = rx.SubscribeWithError(v, func(x ir.Value) {
		if o.has && x == o.last {
			return
		}
		o.last, o.has = x, true
		rec.record(ir.TraceEvent{Node: name, Kind: ir.EventValue, Values: ir.Values{x}})
	}, func(err error) {
		if o.failure == nil {
			o.failure = err
		}
		rec.record(ir.TraceEvent{Node: name, Kind: ir.EventError, Error: err.Error()})
	})
	return o, nil
}

func (o *valueObserver) current() ir.Values {
	if !o.has {
		return ir.Values{}
	}
	return ir.Values{o.last}
}

func (o *valueObserver) check() error { return nil }
func (o *valueObserver) err() error   { return o.failure }

func (o *valueObserver) dispose() {
	if o.sub != nil {
		o.sub.Dispose()
	}
}

func toEdits(script diff.Script[ir.Value]) []ir.Edit {
	edits := make([]ir.Edit, len(script))
	for i, e := range script {
		edit := ir.Edit{Op: e.Op.String(), OldIndex: e.OldIndex, NewIndex: e.NewIndex}
		if e.OldIndex >= 0 {
			edit.Old = e.Old
		}
		if e.NewIndex >= 0 {
			edit.New = e.New
		}
		edits[i] = edit
	}
	return edits
}
