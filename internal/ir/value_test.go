package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestValues_UnmarshalYAML tests that YAML tags decide the element type.
func TestValues_UnmarshalYAML(t *testing.T) {
	var got struct {
		V Values `yaml:"v"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`v: [1, "1", true, a, 0x10]`), &got))
	assert.Equal(t, Values{Int(1), String("1"), Bool(true), String("a"), Int(16)}, got.V)
}

// TestValues_UnmarshalYAMLRejects tests floats, nulls and nested values.
func TestValues_UnmarshalYAMLRejects(t *testing.T) {
	cases := map[string]string{
		"float":  `v: [1.5]`,
		"null":   `v: [~]`,
		"nested": `v: [[1]]`,
		"map":    `v: {a: 1}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			var got struct {
				V Values `yaml:"v"`
			}
			assert.Error(t, yaml.Unmarshal([]byte(doc), &got))
		})
	}
}

// TestValues_UnmarshalJSON tests exact integer decoding and float rejection.
func TestValues_UnmarshalJSON(t *testing.T) {
	var vs Values
	require.NoError(t, json.Unmarshal([]byte(`[9007199254740993, "x", false]`), &vs))
	assert.Equal(t, Values{Int(9007199254740993), String("x"), Bool(false)}, vs)

	assert.Error(t, json.Unmarshal([]byte(`[1.0]`), &vs))
	assert.Error(t, json.Unmarshal([]byte(`[1e3]`), &vs))
	assert.Error(t, json.Unmarshal([]byte(`[null]`), &vs))
	assert.Error(t, json.Unmarshal([]byte(`[{"a":1}]`), &vs))
}

func TestValues_String(t *testing.T) {
	assert.Equal(t, `[1,"a",true]`, Values{Int(1), String("a"), Bool(true)}.String())
	assert.Equal(t, `[]`, Values{}.String())
}

func TestIsScalar(t *testing.T) {
	assert.True(t, IsScalar(String("a")))
	assert.True(t, IsScalar(Int(1)))
	assert.True(t, IsScalar(Bool(false)))
	assert.False(t, IsScalar(Array{}))
	assert.False(t, IsScalar(Object{}))
	assert.False(t, IsScalar(nil))
}

// TestTraceEvent_JSONRoundTrip tests that stored events decode back to the
// same typed values, edits included.
func TestTraceEvent_JSONRoundTrip(t *testing.T) {
	e := TraceEvent{
		Seq:  3,
		Step: 1,
		Node: "all",
		Kind: EventEdit,
		Edits: []Edit{
			{Op: "match", OldIndex: 0, NewIndex: 0, Old: Int(1), New: Int(1)},
			{Op: "insert", OldIndex: -1, NewIndex: 1, New: String("b")},
		},
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var back TraceEvent
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e, back)
}
