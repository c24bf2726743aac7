package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/rcc/internal/ir"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testScenario returns a one-source scenario named name.
func testScenario(name string) *ir.Scenario {
	return &ir.Scenario{
		Name: name,
		Nodes: []ir.Node{
			{Name: "a", Kind: ir.KindSourceList, Initial: ir.Values{ir.Int(1)}},
		},
		Observe: []string{"a"},
		Steps: []ir.Step{
			{Source: "a", Op: ir.OpAdd, Values: ir.Values{ir.Int(2)},
				Expect: map[string]ir.Values{"a": {ir.Int(1), ir.Int(2)}}},
		},
	}
}

// testTrace mirrors what observing testScenario records.
func testTrace() []ir.TraceEvent {
	return []ir.TraceEvent{
		{Seq: 1, Step: 0, Node: "a", Kind: ir.EventSnapshot, Values: ir.Values{ir.Int(1)}},
		{Seq: 2, Step: 0, Node: "a", Kind: ir.EventEdit, Edits: []ir.Edit{
			{Op: "insert", OldIndex: -1, NewIndex: 0, New: ir.Int(1)},
		}},
		{Seq: 3, Step: 0, Node: "a", Kind: ir.EventAdded, Values: ir.Values{ir.Int(1)}},
		{Seq: 4, Step: 1, Node: "a", Kind: ir.EventSnapshot, Values: ir.Values{ir.Int(1), ir.Int(2)}},
		{Seq: 5, Step: 1, Node: "a", Kind: ir.EventEdit, Edits: []ir.Edit{
			{Op: "match", OldIndex: 0, NewIndex: 0, Old: ir.Int(1), New: ir.Int(1)},
			{Op: "insert", OldIndex: -1, NewIndex: 1, New: ir.Int(2)},
		}},
		{Seq: 6, Step: 1, Node: "a", Kind: ir.EventAdded, Values: ir.Values{ir.Int(2)}},
	}
}
