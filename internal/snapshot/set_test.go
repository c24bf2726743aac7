package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Dedup(t *testing.T) {
	s := SetOf(3, 1, 3, 2, 1)
	assert.Equal(t, []int{3, 1, 2}, s.Items())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))
	assert.Equal(t, "{3 1 2}", s.String())
}

func TestSet_Algebra(t *testing.T) {
	a := SetOf(1, 2, 3)
	b := SetOf(3, 4)

	assert.Equal(t, []int{1, 2, 3, 4}, a.Union(b).Items())
	assert.Equal(t, []int{1, 2}, a.Except(b).Items())
	assert.Equal(t, []int{3}, a.Intersect(b).Items())
	assert.Equal(t, []int{1, 2, 4}, a.SymmetricExcept(b).Items())
	assert.Equal(t, []int{1, 3}, a.Remove(2).Items())
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(SetOf(9)))
}

func TestSet_Relations(t *testing.T) {
	small := SetOf(1, 2)
	big := SetOf(2, 1, 3)

	assert.True(t, small.IsSubsetOf(big))
	assert.True(t, small.IsProperSubsetOf(big))
	assert.True(t, big.IsSupersetOf(small))
	assert.True(t, big.IsProperSupersetOf(small))
	assert.False(t, small.IsProperSubsetOf(SetOf(2, 1)))
	assert.True(t, small.SetEquals(SetOf(2, 1)))
	assert.False(t, small.SetEquals(big))
}

func TestSet_NoOpReturnsReceiver(t *testing.T) {
	s := SetOf(1, 2)
	assert.True(t, s.Same(s.Add(1)))
	assert.True(t, s.Same(s.Remove(5)))
	assert.True(t, s.Same(s.Except(SetOf(7))))
	assert.True(t, s.Same(s.Intersect(SetOf(1, 2, 3))))
	assert.True(t, s.Same(s.Union(Set[int]{})))
	assert.False(t, s.Same(s.Add(3)))
	assert.False(t, s.Same(SetOf(1, 2)))
}

func TestSet_Immutable(t *testing.T) {
	base := SetOf(1)
	grown := base.Add(2)
	assert.Equal(t, []int{1}, base.Items())
	assert.False(t, base.Contains(2))
	assert.True(t, grown.Contains(2))
}

func TestSet_Helpers(t *testing.T) {
	assert.Equal(t, []int{1, 2}, ToSet(ListOf(1, 2, 1)).Items())
	assert.Equal(t, []int{0, 1}, MapSet(SetOf(1, 2, 3, 4), func(v int) int { return v / 2 % 2 }).Items())
	assert.Equal(t, []string{"a", "b", "c"}, Union(SetOf("a"), SetOf("b", "a"), SetOf("c")).Items())
}
