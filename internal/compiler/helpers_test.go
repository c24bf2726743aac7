package compiler

import "github.com/roach88/rcc/internal/ir"

func baseScenario() *ir.Scenario {
	return &ir.Scenario{
		Name:        "base",
		Description: "two lists concatenated",
		Nodes: []ir.Node{
			{Name: "a", Kind: ir.KindSourceList, Initial: ir.Values{ir.Int(1)}},
			{Name: "b", Kind: ir.KindSourceList},
			{Name: "all", Kind: ir.KindConcat, Inputs: []string{"a", "b"}},
			{Name: "evens", Kind: ir.KindFilter, Inputs: []string{"all"}, Fn: "even"},
			{Name: "total", Kind: ir.KindSum, Inputs: []string{"all"}},
			{Name: "s", Kind: ir.KindSourceSet},
		},
		Observe: []string{"all", "evens", "total"},
		Steps: []ir.Step{{
			Source: "a",
			Op:     ir.OpAdd,
			Values: ir.Values{ir.Int(2)},
			Expect: map[string]ir.Values{"all": {ir.Int(1), ir.Int(2)}},
		}},
		Assertions: []ir.Assertion{{Type: ir.AssertEmissionCount, Node: "all", Count: 2}},
	}
}

func codes(errs ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}
