package testutil

import (
	"fmt"
	"sync"
)

// FixedRunIDs hands out run IDs from a fixed list so journaled runs have
// predictable keys in tests. Once the list is exhausted it falls back to
// "run-<n>".
type FixedRunIDs struct {
	mu  sync.Mutex
	ids []string
	n   int
}

// NewFixedRunIDs creates a generator returning ids in order.
func NewFixedRunIDs(ids ...string) *FixedRunIDs {
	return &FixedRunIDs{ids: ids}
}

// Generate returns the next run ID.
func (g *FixedRunIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	if g.n <= len(g.ids) {
		return g.ids[g.n-1]
	}
	return fmt.Sprintf("run-%d", g.n)
}
