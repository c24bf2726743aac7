package harness

import (
	"fmt"

	"github.com/roach88/rcc/internal/collection"
	"github.com/roach88/rcc/internal/ir"
	"github.com/roach88/rcc/internal/snapshot"
)

// apply runs one step against its source.
func (g *graph) apply(step ir.Step) error {
	if src, ok := g.srcLists[step.Source]; ok {
		return applyList(src, step)
	}
	if src, ok := g.srcSets[step.Source]; ok {
		return applySet(src, step)
	}
	return fmt.Errorf("%q is not a source node", step.Source)
}

func applyList(src *collection.SourceList[ir.Value], step ir.Step) error {
	vs := step.Values
	switch step.Op {
	case ir.OpSet:
		return src.SetSource(snapshot.ListOf[ir.Value](vs...))
	case ir.OpAdd:
		return src.Add(vs[0])
	case ir.OpAddRange:
		return src.AddRange(vs...)
	case ir.OpRemove:
		return src.Remove(vs[0])
	case ir.OpRemoveRange:
		return src.RemoveRange(vs...)
	case ir.OpReplace:
		return src.Replace(vs[0], vs[1])
	case ir.OpReplaceAt:
		return src.ReplaceAt(step.Index, vs[0])
	case ir.OpInsertAt:
		return src.InsertRangeAt(step.Index, vs...)
	case ir.OpClear:
		return src.Clear()
	default:
		return fmt.Errorf("op %q does not apply to lists", step.Op)
	}
}

func applySet(src *collection.SourceSet[ir.Value], step ir.Step) error {
	vs := step.Values
	other := snapshot.SetOf[ir.Value](vs...)
	switch step.Op {
	case ir.OpSet:
		return src.SetSource(other)
	case ir.OpAdd:
		return src.Add(vs[0])
	case ir.OpAddRange:
		return src.AddRange(vs...)
	case ir.OpRemove:
		return src.Remove(vs[0])
	case ir.OpClear:
		return src.Clear()
	case ir.OpUnionWith:
		return src.UnionWith(other)
	case ir.OpIntersectWith:
		return src.IntersectWith(other)
	case ir.OpExceptWith:
		return src.ExceptWith(other)
	case ir.OpSymmetricExceptWith:
		return src.SymmetricExceptWith(other)
	default:
		return fmt.Errorf("op %q does not apply to sets", step.Op)
	}
}
