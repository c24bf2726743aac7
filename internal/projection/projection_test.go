package projection

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rcc/internal/collection"
	"github.com/roach88/rcc/internal/diff"
	"github.com/roach88/rcc/internal/snapshot"
)

func TestObservableList_Changes(t *testing.T) {
	l := NewObservableList("a", "b")
	var changes []Change[string]
	reg := l.OnChange(func(c Change[string]) { changes = append(changes, c) })

	l.Insert(1, "x")
	l.Set(0, "A")
	l.RemoveAt(2)
	reg.Dispose()
	l.Insert(0, "ignored")

	assert.Equal(t, []Change[string]{
		{Kind: ChangeInsert, Index: 1, New: "x"},
		{Kind: ChangeReplace, Index: 0, Old: "a", New: "A"},
		{Kind: ChangeRemove, Index: 2, Old: "b"},
	}, changes)
	assert.Equal(t, []string{"ignored", "A", "x"}, l.Items())
	assert.Equal(t, "replace", ChangeReplace.String())
}

// TestApply_Cursor walks the cursor algorithm through every op.
func TestApply_Cursor(t *testing.T) {
	before := snapshot.ListOf(1, 2, 3, 4)
	after := snapshot.ListOf(1, 9, 4, 5)
	script := diff.Compute(before, after, nil)

	target := NewObservableList(before.Items()...)
	require.NoError(t, Apply[int](target, script))
	assert.Equal(t, after.Items(), target.Items())
}

func TestApply_RejectsMisfit(t *testing.T) {
	script := diff.Compute(snapshot.ListOf(1, 2), snapshot.ListOf(1), nil)
	assert.Error(t, Apply[int](NewObservableList(1), script))
	assert.Error(t, Apply[int](NewObservableList(1, 2, 3), script))
	assert.Error(t, Apply[int](NewObservableList[int](), diff.Script[int]{{Op: diff.Replace, New: 1}}))
}

type row struct{ ID int }

// TestProjection_PreservesMatchedSlots tests that only changed slots are
// written.
func TestProjection_PreservesMatchedSlots(t *testing.T) {
	r1, r2, r3 := &row{1}, &row{2}, &row{3}
	src := collection.NewSourceListOf(r1, r2, r3)
	p := New[*row](src, nil)
	defer p.Dispose()
	require.NoError(t, p.Err())
	require.Equal(t, []*row{r1, r2, r3}, p.List().Items())

	var changes []Change[*row]
	p.List().OnChange(func(c Change[*row]) { changes = append(changes, c) })

	r4 := &row{4}
	require.NoError(t, src.ReplaceAt(1, r4))
	require.Len(t, changes, 1)
	assert.Equal(t, ChangeReplace, changes[0].Kind)
	assert.Equal(t, 1, changes[0].Index)
	assert.Same(t, r1, p.List().At(0))
	assert.Same(t, r3, p.List().At(2))

	changes = nil
	require.NoError(t, src.Remove(r1))
	require.Len(t, changes, 1)
	assert.Equal(t, ChangeRemove, changes[0].Kind)
	assert.Equal(t, []*row{r4, r3}, p.List().Items())
}

// TestProjection_TracksRandomMutations checks the projection equals the
// source after every mutation of a random sequence.
func TestProjection_TracksRandomMutations(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	src := collection.NewSourceListOf[int]()
	p := New(collection.Map[int](src, func(v int) int { return v % 7 }), nil)
	defer p.Dispose()

	for step := 0; step < 400; step++ {
		n := src.Source().Len()
		switch op := r.IntN(4); {
		case op == 0 || n == 0:
			require.NoError(t, src.InsertAt(r.IntN(n+1), r.IntN(50)))
		case op == 1:
			require.NoError(t, src.SetSource(src.Source().RemoveAt(r.IntN(n))))
		case op == 2:
			require.NoError(t, src.ReplaceAt(r.IntN(n), r.IntN(50)))
		default:
			require.NoError(t, src.AddRange(r.IntN(50), r.IntN(50)))
		}
		want := snapshot.Map(src.Source(), func(v int) int { return v % 7 }).Items()
		require.Equal(t, nonNil(want), nonNil(p.List().Items()), "step %d", step)
	}
	require.NoError(t, p.Err())
}

func TestProjection_Dispose(t *testing.T) {
	src := collection.NewSourceListOf("a")
	p := New[string](src, nil)
	p.Dispose()
	p.Dispose()

	require.NoError(t, src.Add("b"))
	assert.Equal(t, []string{"a"}, p.List().Items())
}

func TestProjection_InitialFailure(t *testing.T) {
	src := collection.NewSourceListOf(1)
	calls := 0
	p := New(collection.Map[int](src, func(int) int {
		calls++
		panic("bad map")
	}), nil)
	assert.True(t, collection.IsCallbackError(p.Err()))
	assert.Equal(t, 0, p.List().Len())

	// Nothing stays attached after the failed start, even without Dispose.
	require.NoError(t, src.Add(2))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, p.List().Len())
}

func TestNewWith_SimilarityAligner(t *testing.T) {
	type item struct {
		ID  int
		Rev int
	}
	src := collection.NewSourceListOf(item{1, 0}, item{2, 0})
	p := NewWith[item](src, nil, diff.SimilarityAligner[item]{
		Similar: func(a, b item) bool { return a.ID == b.ID },
	})
	defer p.Dispose()

	var kinds []ChangeKind
	p.List().OnChange(func(c Change[item]) { kinds = append(kinds, c.Kind) })
	require.NoError(t, src.ReplaceAt(0, item{1, 1}))
	assert.Equal(t, []ChangeKind{ChangeReplace}, kinds)
	assert.Equal(t, item{1, 1}, p.List().At(0))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
