package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMap(t *testing.T) {
	double, ok := LookupMap("double")
	require.True(t, ok)
	assert.Equal(t, Value(Int(6)), double(Int(3)))

	toString, ok := LookupMap("to_string")
	require.True(t, ok)
	assert.Equal(t, Value(String("true")), toString(Bool(true)))

	_, ok = LookupMap("nope")
	assert.False(t, ok)
}

// TestMapFunc_PanicsOnWrongType tests that type errors surface as panics
// carrying an error value.
func TestMapFunc_PanicsOnWrongType(t *testing.T) {
	double, _ := LookupMap("double")
	assert.PanicsWithError(t, "double: want int, got string", func() { double(String("x")) })
}

func TestLookupPredicate(t *testing.T) {
	even, ok := LookupPredicate("even")
	require.True(t, ok)
	assert.True(t, even(Int(4)))
	assert.False(t, even(Int(-3)))

	nonEmpty, _ := LookupPredicate("non_empty")
	assert.False(t, nonEmpty(String("")))
}

func TestNames_Sorted(t *testing.T) {
	assert.IsNonDecreasing(t, MapFuncNames())
	assert.IsNonDecreasing(t, PredicateNames())
	assert.Contains(t, PredicateNames(), "big")
}

func TestSortValues(t *testing.T) {
	in := Values{String("b"), Int(3), Bool(true), Int(-1), String("a"), Bool(false)}
	assert.Equal(t,
		Values{Bool(false), Bool(true), Int(-1), Int(3), String("a"), String("b")},
		SortValues(in))
	assert.Equal(t, String("b"), in[0], "input untouched")
}
