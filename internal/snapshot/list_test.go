package snapshot

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ZeroValue(t *testing.T) {
	var l List[int]
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Items())
	assert.Equal(t, "[]", l.String())
	assert.True(t, l.Same(ListOf[int]()))
}

// TestList_MutatorsDoNotAlias tests that results never share storage with
// the receiver, even when the receiver has spare capacity.
func TestList_MutatorsDoNotAlias(t *testing.T) {
	base := ListOf(1, 2, 3)
	a := base.Add(4)
	b := base.Add(5)
	assert.Equal(t, []int{1, 2, 3, 4}, a.Items())
	assert.Equal(t, []int{1, 2, 3, 5}, b.Items())
	assert.Equal(t, []int{1, 2, 3}, base.Items())

	c := base.SetItem(0, 9)
	assert.Equal(t, []int{9, 2, 3}, c.Items())
	assert.Equal(t, 1, base.At(0))

	items := base.Items()
	items[0] = 100
	assert.Equal(t, 1, base.At(0))
}

func TestList_Mutators(t *testing.T) {
	l := ListOf(1, 2, 3, 2)

	assert.Equal(t, []int{1, 7, 8, 2, 3, 2}, l.InsertRange(1, 7, 8).Items())
	assert.Equal(t, []int{0, 1, 2, 3, 2}, l.Insert(0, 0).Items())
	assert.Equal(t, []int{1, 3, 2}, l.RemoveAt(1).Items())
	assert.Equal(t, []int{1, 3, 2}, l.Remove(2, nil).Items())
	assert.Equal(t, []int{1, 3}, l.RemoveRange(nil, 2, 2).Items())
	assert.Equal(t, []int{1, 5, 3, 2}, l.Replace(2, 5, nil).Items())
	assert.Equal(t, []int{1, 2}, l.Take(2).Items())
	assert.Equal(t, []int{1, 2, 3, 2, 4}, l.AddRange(4).Items())
	assert.Equal(t, 1, l.IndexOf(2, nil))
	assert.True(t, l.Contains(3, nil))
	assert.Equal(t, "[1 2 3 2]", l.String())
}

// TestList_NoOpReturnsReceiver tests the identity contract used by sources to
// skip redundant emissions.
func TestList_NoOpReturnsReceiver(t *testing.T) {
	l := ListOf(1, 2, 3)

	assert.True(t, l.Same(l.Remove(9, nil)))
	assert.True(t, l.Same(l.Replace(9, 1, nil)))
	assert.True(t, l.Same(l.AddRange()))
	assert.True(t, l.Same(l.InsertRange(1)))
	assert.True(t, l.Same(l.Take(10)))
	assert.True(t, l.Same(l.Concat(List[int]{})))
	assert.False(t, l.Same(l.SetItem(0, 1)))
	assert.False(t, l.Same(ListOf(1, 2, 3)))
}

func TestList_IndexPanics(t *testing.T) {
	l := ListOf(1)
	assert.Panics(t, func() { l.RemoveAt(1) })
	assert.Panics(t, func() { l.Insert(2, 0) })
	assert.Panics(t, func() { l.Insert(-1, 0) })
}

func TestList_Take(t *testing.T) {
	l := ListOf(1, 2, 3)
	assert.Empty(t, l.Take(0).Items())
	assert.Empty(t, l.Take(-3).Items())
	assert.Equal(t, []int{1}, l.Take(1).Items())
}

func TestList_Iterators(t *testing.T) {
	l := ListOf("a", "b")
	assert.Equal(t, []string{"a", "b"}, slices.Collect(l.Values()))

	var idx []int
	for i := range l.All() {
		idx = append(idx, i)
	}
	assert.Equal(t, []int{0, 1}, idx)
}

func TestMapConcat(t *testing.T) {
	l := Map(ListOf(1, 2), func(v int) int { return v * 10 })
	assert.Equal(t, []int{10, 20}, l.Items())

	joined := Concat(ListOf(1), List[int]{}, ListOf(2, 3))
	assert.Equal(t, []int{1, 2, 3}, joined.Items())
	assert.True(t, Concat[int]().IsEmpty())
}

func TestDefaultEqual(t *testing.T) {
	assert.True(t, DefaultEqual(1, 1))
	assert.False(t, DefaultEqual(1, 2))
	assert.True(t, DefaultEqual([]int{1, 2}, []int{1, 2}))
	assert.False(t, DefaultEqual([]int{1}, []int{2}))

	var a, b any
	assert.True(t, DefaultEqual(a, b))
	b = 1
	assert.False(t, DefaultEqual(a, b))
	a = []int{1}
	assert.False(t, DefaultEqual(a, b))

	type pair struct {
		Name string
		Tags []string
	}
	require.True(t, DefaultEqual(pair{"x", []string{"t"}}, pair{"x", []string{"t"}}))
	assert.True(t, Comparable[string]()("a", "a"))
}

func TestList_EqualCustom(t *testing.T) {
	fold := func(a, b string) bool { return len(a) == len(b) }
	assert.True(t, ListOf("ab", "c").Equal(ListOf("xy", "z"), fold))
	assert.False(t, ListOf("ab").Equal(ListOf("ab", "c"), nil))
}
