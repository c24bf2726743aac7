package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rcc/internal/ir"
)

// TestOrder_InputsFirst tests that nodes may be declared before their inputs.
func TestOrder_InputsFirst(t *testing.T) {
	s := &ir.Scenario{Nodes: []ir.Node{
		{Name: "m", Kind: ir.KindMap, Inputs: []string{"a"}, Fn: "double"},
		{Name: "a", Kind: ir.KindSourceList},
		{Name: "z", Kind: ir.KindSourceList},
	}}
	order, err := Order(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "m", "z"}, order)
}

// TestOrder_FlattenReferences tests that names written to a flatten's
// upstream source become dependencies.
func TestOrder_FlattenReferences(t *testing.T) {
	s := &ir.Scenario{
		Nodes: []ir.Node{
			{Name: "flat", Kind: ir.KindFlatten, Inputs: []string{"outer"}},
			{Name: "outer", Kind: ir.KindSourceList},
			{Name: "inner", Kind: ir.KindSourceList, Initial: ir.Values{ir.Int(1)}},
		},
		Steps: []ir.Step{{Source: "outer", Op: ir.OpAdd, Values: ir.Values{ir.String("inner")}}},
	}
	order, err := Order(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "flat"}, order)
}

func TestOrder_SelfReferencingFlatten(t *testing.T) {
	s := &ir.Scenario{Nodes: []ir.Node{
		{Name: "outer", Kind: ir.KindSourceList, Initial: ir.Values{ir.String("flat")}},
		{Name: "flat", Kind: ir.KindFlatten, Inputs: []string{"outer"}},
	}}
	_, err := Order(s)
	var ce *CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"flat", "flat"}, ce.Path)
}

// TestOrder_CycleThroughDerivedNode tests a flatten reading a node derived
// from itself.
func TestOrder_CycleThroughDerivedNode(t *testing.T) {
	s := &ir.Scenario{Nodes: []ir.Node{
		{Name: "outer", Kind: ir.KindSourceList, Initial: ir.Values{ir.String("g")}},
		{Name: "f", Kind: ir.KindFlatten, Inputs: []string{"outer"}},
		{Name: "g", Kind: ir.KindMap, Inputs: []string{"f"}, Fn: "identity"},
	}}
	_, err := Order(s)
	var ce *CycleError
	require.ErrorAs(t, err, &ce)
	require.Len(t, ce.Path, 3)
	assert.Equal(t, ce.Path[0], ce.Path[2])
	assert.ElementsMatch(t, []string{"f", "g"}, ce.Path[:2])
	assert.Contains(t, ce.Error(), "dependency cycle")
}

func TestOrder_InputCycle(t *testing.T) {
	s := &ir.Scenario{Nodes: []ir.Node{
		{Name: "a", Kind: ir.KindMap, Inputs: []string{"b"}, Fn: "identity"},
		{Name: "b", Kind: ir.KindMap, Inputs: []string{"c"}, Fn: "identity"},
		{Name: "c", Kind: ir.KindMap, Inputs: []string{"a"}, Fn: "identity"},
	}}
	_, err := Order(s)
	var ce *CycleError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Path, 4)
}

// TestOrder_StringsNotNamingNodes tests that ordinary string data adds no
// edges.
func TestOrder_StringsNotNamingNodes(t *testing.T) {
	s := &ir.Scenario{Nodes: []ir.Node{
		{Name: "outer", Kind: ir.KindSourceList, Initial: ir.Values{ir.String("hello")}},
		{Name: "f", Kind: ir.KindWhereAny, Inputs: []string{"outer"}, Fn: "even"},
	}}
	order, err := Order(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "f"}, order)
}
