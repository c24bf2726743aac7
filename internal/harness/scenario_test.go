package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rcc/internal/ir"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_YAML(t *testing.T) {
	s, err := LoadScenario("testdata/concat.yaml")
	require.NoError(t, err)

	assert.Equal(t, "concat_three", s.Name)
	require.Len(t, s.Nodes, 5)
	assert.Equal(t, ir.KindConcat, s.Nodes[4].Kind)
	assert.Equal(t, []string{"ab", "c"}, s.Nodes[4].Inputs)
	require.Len(t, s.Steps, 4)
	assert.Equal(t, ir.OpAddRange, s.Steps[3].Op)
	assert.Equal(t, ints(5, 6, 8), s.Steps[3].Values)
	assert.Equal(t, ints(1, 1, 3, 5, 6, 8), s.Steps[3].Expect["y"])
}

func TestLoadScenario_CUE(t *testing.T) {
	s, err := LoadScenario("testdata/sets.cue")
	require.NoError(t, err)
	assert.Equal(t, "set_algebra", s.Name)
	assert.Equal(t, ir.KindSetMap, s.Nodes[3].Kind)
}

func TestLoadScenario_JSON(t *testing.T) {
	s, err := LoadScenario("testdata/take_map.json")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Nodes[2].N)
	assert.Equal(t, 1, s.Steps[1].Index)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{
			name:     "unknown field",
			file:     "s.yaml",
			content:  "name: s\nbogus: 1\nnodes: [{name: a, kind: source_list}]\n",
			contains: "failed to parse YAML",
		},
		{
			name:     "float value",
			file:     "s.yaml",
			content:  "name: s\nnodes: [{name: a, kind: source_list, initial: [1.5]}]\n",
			contains: "failed to parse YAML",
		},
		{
			name:     "graph error",
			file:     "s.yaml",
			content:  "name: s\nnodes: [{name: m, kind: map, inputs: [nope], fn: double}]\n",
			contains: "E202",
		},
		{
			name:     "no nodes",
			file:     "s.json",
			content:  `{"name": "s", "nodes": []}`,
			contains: "invalid scenario",
		},
		{
			name:     "unknown JSON field",
			file:     "s.json",
			content:  `{"name": "s", "extra": true}`,
			contains: "failed to parse JSON",
		},
		{
			name:     "unsupported extension",
			file:     "s.txt",
			content:  "name: s",
			contains: "unsupported scenario extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestIsScenarioFile(t *testing.T) {
	assert.True(t, IsScenarioFile("a.yaml"))
	assert.True(t, IsScenarioFile("a.YML"))
	assert.True(t, IsScenarioFile("a.json"))
	assert.True(t, IsScenarioFile("a.cue"))
	assert.False(t, IsScenarioFile("a.golden"))
	assert.False(t, IsScenarioFile("a"))
}

func TestUUIDv7Generator(t *testing.T) {
	var gen RunIDGenerator = UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14])
}
