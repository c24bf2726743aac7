package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const doubledYAML = `name: doubled
nodes:
  - {name: a, kind: source_list, initial: [1]}
  - {name: d, kind: map, inputs: [a], fn: double}
observe: [d]
steps:
  - {source: a, op: add, values: [2], expect: {d: [2, 4]}}
assertions:
  - {type: final_snapshot, node: d, values: [2, 4]}
`

const failingYAML = `name: wrong_expectation
nodes:
  - {name: a, kind: source_list, initial: [1]}
  - {name: d, kind: map, inputs: [a], fn: double}
observe: [d]
steps:
  - {source: a, op: add, values: [2], expect: {d: [2, 5]}}
`

const unknownFnYAML = `name: unknown_fn
nodes:
  - {name: a, kind: source_list}
  - {name: t, kind: map, inputs: [a], fn: triple}
observe: [t]
`

const evensCUE = `name: "evens"
nodes: [
	{name: "a", kind: "source_list", initial: [1, 2, 3]},
	{name: "e", kind: "filter", inputs: ["a"], fn: "even"},
]
observe: ["e"]
steps: [
	{source: "a", op: "add", values: [4], expect: {e: [2, 4]}},
]
`

// writeScenario writes content to dir/name and returns the path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
