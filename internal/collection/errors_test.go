package collection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// TestCallbackPanic_ReturnedToMutator tests that a panicking map function
// surfaces as an error from the mutation that triggered it.
func TestCallbackPanic_ReturnedToMutator(t *testing.T) {
	s := NewSourceListOf(1)
	boom := errors.New("boom")
	m := Map[int](s, func(v int) int {
		if v == 2 {
			panic(boom)
		}
		return v
	})
	sub := Subscribe(m)
	defer sub.Dispose()

	err := s.Add(2)
	require.Error(t, err)
	assert.True(t, IsCallbackError(err))
	assert.ErrorIs(t, err, boom)

	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, "map", cbErr.Op)
	assert.Equal(t, "map callback panicked: boom", cbErr.Error())

	// The source has moved on regardless.
	assert.Equal(t, []int{1, 2}, s.Source().Items())
}

func TestCallbackPanic_DuringSubscribe(t *testing.T) {
	s := NewSourceListOf(1)
	sub := Subscribe(Where[int](s, func(int) bool { panic("bad predicate") }))
	require.Error(t, sub.Err())

	var cbErr *CallbackError
	require.ErrorAs(t, sub.Err(), &cbErr)
	assert.Equal(t, "where", cbErr.Op)
	assert.Equal(t, "bad predicate", cbErr.Value)
	assert.Nil(t, cbErr.Unwrap())
}

// TestCallbackPanic_DuringSubscribeReleases tests that a subscription which
// failed on its initial snapshot leaves nothing attached to the source.
func TestCallbackPanic_DuringSubscribeReleases(t *testing.T) {
	s := NewSourceListOf(1)
	calls := 0
	m := Map[int](s, func(v int) int {
		calls++
		if v == 1 {
			panic("bad map")
		}
		return v
	})
	sub := Subscribe(m)
	require.True(t, IsCallbackError(sub.Err()))
	sub.Dispose()
	assert.False(t, s.subject.HasObservers())

	require.NoError(t, s.SetSource(snapshot.ListOf(2)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, sub.Items().Len())

	// The derived list reconnects cleanly for a new subscriber.
	again := Subscribe(m)
	defer again.Dispose()
	require.NoError(t, again.Err())
	assert.Equal(t, []int{2}, again.Items().Items())
}

// TestCallbackPanic_BindSubscribeReleasesNodes tests that binding nodes
// created before a failing projection are released with the subscription.
func TestCallbackPanic_BindSubscribeReleasesNodes(t *testing.T) {
	s := NewSourceListOf(1, 2)
	healthy := NewSourceListOf(10)
	b := Bind[int](s, func(v int) List[int] {
		if v == 2 {
			panic("no list for 2")
		}
		return healthy
	})

	sub := Subscribe(b)
	require.True(t, IsCallbackError(sub.Err()))
	assert.False(t, healthy.subject.HasObservers())
	assert.False(t, s.subject.HasObservers())

	require.NoError(t, healthy.Add(11))
	assert.Equal(t, 0, sub.Items().Len())
}

func TestCallbackPanic_NestedKeepsInnermost(t *testing.T) {
	s := NewSourceListOf(1)
	nested := Bind[int](s, func(v int) List[int] {
		return Map(Of(v), func(int) int { panic("inner") })
	})
	sub := Subscribe(nested)

	var cbErr *CallbackError
	require.ErrorAs(t, sub.Err(), &cbErr)
	assert.Equal(t, "map", cbErr.Op)
}

// TestRuntimePanic_NotConverted tests that panics outside the propagation
// contract keep unwinding.
func TestRuntimePanic_NotConverted(t *testing.T) {
	s := NewSourceListOf(1)
	rx.Subscribe(s.Items(), func(l snapshot.List[int]) {
		if l.Len() > 1 {
			panic("subscriber bug")
		}
	})
	assert.PanicsWithValue(t, "subscriber bug", func() { _ = s.Add(2) })
}

func TestUnhandledStreamError_Returned(t *testing.T) {
	s := NewSourceListOf(1)
	rx.Subscribe(Min[int](s), func(int) {})

	err := s.Clear()
	var unhandled *rx.UnhandledError
	require.ErrorAs(t, err, &unhandled)
	assert.True(t, IsEmptySequence(err))
}

// TestReentrancy_FeedbackLoop binds a list derived from a source back into
// the same source.
func TestReentrancy_FeedbackLoop(t *testing.T) {
	target := NewSourceList(snapshot.ListOf(0), WithMaxReentrancy(4))
	inc := Map[int](target, func(v int) int { return v + 1 })

	_, err := BindTo(inc, target)
	require.Error(t, err)
	assert.True(t, IsReentrancyError(err))

	var reErr *ReentrancyError
	require.ErrorAs(t, err, &reErr)
	assert.Equal(t, 4, reErr.Limit)
	assert.Equal(t, 5, reErr.Depth)
	assert.Equal(t, []int{4}, target.Source().Items())
	assert.Contains(t, reErr.Error(), "feedback loop")
}

func TestReentrancy_WithinLimit(t *testing.T) {
	s := NewSourceListOf(0)
	writes := 0
	rx.Subscribe(s.Items(), func(l snapshot.List[int]) {
		if l.At(0) < 3 {
			writes++
			require.NoError(t, s.ReplaceAt(0, l.At(0)+1))
		}
	})
	assert.Equal(t, 3, writes)
	assert.Equal(t, []int{3}, s.Source().Items())
}

// TestReentrancy_LaterSubscriberSeesLatest tests that when one observer
// sets the source from inside a propagation, observers after it end on the
// newest snapshot rather than the one being replaced.
func TestReentrancy_LaterSubscriberSeesLatest(t *testing.T) {
	s := NewSourceListOf[int]()
	rx.Subscribe(s.Items(), func(l snapshot.List[int]) {
		if l.Len() == 1 {
			require.NoError(t, s.Add(99))
		}
	})
	direct := Subscribe(s)
	defer direct.Dispose()
	mapped := Subscribe(Map[int](s, func(v int) int { return v * 2 }))
	defer mapped.Dispose()

	var seen [][]int
	direct.OnChange(func(l snapshot.List[int]) { seen = append(seen, l.Items()) })

	require.NoError(t, s.Add(1))
	assert.Equal(t, []int{1, 99}, s.Source().Items())
	assert.Equal(t, []int{1, 99}, direct.Items().Items())
	assert.Equal(t, []int{2, 198}, mapped.Items().Items())
	assert.Equal(t, [][]int{{1, 99}}, seen)
}

func TestWithMaxReentrancy_IgnoresInvalid(t *testing.T) {
	o := buildSourceOptions([]Option{WithMaxReentrancy(0)})
	assert.Equal(t, DefaultMaxReentrancy, o.maxReentrancy)
}

func TestIsHelpers(t *testing.T) {
	assert.False(t, IsCallbackError(errors.New("x")))
	assert.False(t, IsReentrancyError(nil))
	assert.True(t, IsEmptySequence(ErrEmptySequence))
}
