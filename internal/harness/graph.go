package harness

import (
	"fmt"

	"github.com/roach88/rcc/internal/collection"
	"github.com/roach88/rcc/internal/compiler"
	"github.com/roach88/rcc/internal/ir"
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// graph holds the collections built from a scenario's nodes.
type graph struct {
	nodes    map[string]ir.Node
	lists    map[string]collection.List[ir.Value]
	sets     map[string]collection.Set[ir.Value]
	values   map[string]rx.Observable[ir.Value]
	srcLists map[string]*collection.SourceList[ir.Value]
	srcSets  map[string]*collection.SourceSet[ir.Value]
}

func buildGraph(s *ir.Scenario, opts ...collection.Option) (*graph, error) {
	order, err := compiler.Order(s)
	if err != nil {
		return nil, err
	}

	g := &graph{
		nodes:    make(map[string]ir.Node, len(s.Nodes)),
		lists:    make(map[string]collection.List[ir.Value]),
		sets:     make(map[string]collection.Set[ir.Value]),
		values:   make(map[string]rx.Observable[ir.Value]),
		srcLists: make(map[string]*collection.SourceList[ir.Value]),
		srcSets:  make(map[string]*collection.SourceSet[ir.Value]),
	}
	for _, n := range s.Nodes {
		g.nodes[n.Name] = n
	}
	for _, name := range order {
		if err := g.add(g.nodes[name], opts); err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
	}
	return g, nil
}

func (g *graph) add(n ir.Node, opts []collection.Option) error {
	switch n.Kind {
	case ir.KindSourceList:
		src := collection.NewSourceList(snapshot.ListOf[ir.Value](n.Initial...), opts...)
		g.srcLists[n.Name] = src
		g.lists[n.Name] = src

	case ir.KindConcat:
		ins := make([]collection.List[ir.Value], len(n.Inputs))
		for i, name := range n.Inputs {
			in, err := g.list(name)
			if err != nil {
				return err
			}
			ins[i] = in
		}
		g.lists[n.Name] = collection.ConcatAll(ins...)

	case ir.KindMap, ir.KindFilter, ir.KindTake, ir.KindFlatten, ir.KindWhereAny,
		ir.KindSum, ir.KindCount, ir.KindToSet:
		in, err := g.list(n.Inputs[0])
		if err != nil {
			return err
		}
		return g.addListOp(n, in)

	case ir.KindSourceSet:
		src := collection.NewSourceSet(snapshot.SetOf[ir.Value](n.Initial...), opts...)
		g.srcSets[n.Name] = src
		g.sets[n.Name] = src

	case ir.KindUnion:
		ins := make([]collection.Set[ir.Value], len(n.Inputs))
		for i, name := range n.Inputs {
			in, err := g.set(name)
			if err != nil {
				return err
			}
			ins[i] = in
		}
		g.sets[n.Name] = collection.UnionAll(ins...)

	case ir.KindSetFlatten:
		in, err := g.set(n.Inputs[0])
		if err != nil {
			return err
		}
		g.sets[n.Name] = collection.BindSet[ir.Value, ir.Value](in, g.setRef)

	case ir.KindSetMap:
		in, err := g.set(n.Inputs[0])
		if err != nil {
			return err
		}
		f, _ := ir.LookupMap(n.Fn)
		g.sets[n.Name] = collection.MapSet[ir.Value, ir.Value](in, f)

	default:
		return fmt.Errorf("unsupported kind %q", n.Kind)
	}
	return nil
}

// addListOp builds the nodes that read a single list.
func (g *graph) addListOp(n ir.Node, in collection.List[ir.Value]) error {
	switch n.Kind {
	case ir.KindMap:
		f, _ := ir.LookupMap(n.Fn)
		g.lists[n.Name] = collection.Map[ir.Value, ir.Value](in, f)
	case ir.KindFilter:
		pred, _ := ir.LookupPredicate(n.Fn)
		g.lists[n.Name] = collection.Where[ir.Value](in, pred)
	case ir.KindTake:
		g.lists[n.Name] = collection.Take(in, n.N)
	case ir.KindFlatten:
		g.lists[n.Name] = collection.Bind[ir.Value, ir.Value](in, g.listRef)
	case ir.KindWhereAny:
		pred, _ := ir.LookupPredicate(n.Fn)
		g.lists[n.Name] = collection.WhereObservable[ir.Value](in, func(v ir.Value) rx.Observable[bool] {
			return collection.Any[ir.Value](g.listRef(v), pred)
		})
	case ir.KindSum:
		sums := collection.SumBy[ir.Value, int64](in, asInt)
		g.values[n.Name] = rx.Map(sums, func(i int64) ir.Value { return ir.Int(i) })
	case ir.KindCount:
		g.values[n.Name] = rx.Map(collection.Count(in), func(c int) ir.Value { return ir.Int(c) })
	case ir.KindToSet:
		g.sets[n.Name] = collection.ToSet(in)
	}
	return nil
}

func (g *graph) list(name string) (collection.List[ir.Value], error) {
	l, ok := g.lists[name]
	if !ok {
		return nil, fmt.Errorf("%q is not a list node", name)
	}
	return l, nil
}

func (g *graph) set(name string) (collection.Set[ir.Value], error) {
	s, ok := g.sets[name]
	if !ok {
		return nil, fmt.Errorf("%q is not a set node", name)
	}
	return s, nil
}

// listRef resolves an element naming a list node. It runs as a bind
// projector, so failures panic and reach the mutating step as a callback
// error.
func (g *graph) listRef(v ir.Value) collection.List[ir.Value] {
	name, ok := v.(ir.String)
	if !ok {
		panic(fmt.Errorf("element %s does not name a node", ir.Format(v)))
	}
	l, err := g.list(string(name))
	if err != nil {
		panic(err)
	}
	return l
}

func (g *graph) setRef(v ir.Value) collection.Set[ir.Value] {
	name, ok := v.(ir.String)
	if !ok {
		panic(fmt.Errorf("element %s does not name a node", ir.Format(v)))
	}
	s, err := g.set(string(name))
	if err != nil {
		panic(err)
	}
	return s
}

func asInt(v ir.Value) int64 {
	i, ok := v.(ir.Int)
	if !ok {
		panic(fmt.Errorf("sum: want int, got %s", ir.Format(v)))
	}
	return int64(i)
}
