package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWithDomain_Separates(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, hashWithDomain(DomainEvent, data), hashWithDomain(DomainTrace, data))
	assert.Len(t, hashWithDomain(DomainEvent, data), 64)
}

func TestEventHash_Deterministic(t *testing.T) {
	e := TraceEvent{Seq: 1, Node: "a", Kind: EventSnapshot, Values: Values{Int(1), Int(2)}}
	h1, err := EventHash(e)
	require.NoError(t, err)
	h2, err := EventHash(e)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	e.Seq = 2
	h3, err := EventHash(e)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

// TestTraceHash_OrderSensitive tests that reordering events changes the
// digest.
func TestTraceHash_OrderSensitive(t *testing.T) {
	a := TraceEvent{Seq: 1, Node: "a", Kind: EventSnapshot}
	b := TraceEvent{Seq: 2, Node: "b", Kind: EventSnapshot}

	h1, err := TraceHash([]TraceEvent{a, b})
	require.NoError(t, err)
	h2, err := TraceHash([]TraceEvent{b, a})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	empty, err := TraceHash(nil)
	require.NoError(t, err)
	assert.Len(t, empty, 64)
}

// TestScenarioHash_IgnoresSourceFormat tests that equal scenarios hash equal
// regardless of how their values were spelled.
func TestScenarioHash_IgnoresSourceFormat(t *testing.T) {
	s1 := &Scenario{Name: "s", Nodes: []Node{{Name: "a", Kind: KindSourceList, Initial: Values{Int(1)}}}}
	s2 := &Scenario{Name: "s", Nodes: []Node{{Name: "a", Kind: KindSourceList, Initial: Values{Int(1)}}}, Assertions: []Assertion{}}

	h1, err := ScenarioHash(s1)
	require.NoError(t, err)
	h2, err := ScenarioHash(s2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
