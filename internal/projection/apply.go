package projection

import (
	"fmt"

	"github.com/roach88/rcc/internal/diff"
)

// Apply runs script against target with a cursor: Match advances, Insert
// inserts at the cursor and advances, Delete removes at the cursor without
// advancing, and Replace or Modify overwrite at the cursor and advance.
//
// Apply checks every step against target's length and stops at the first
// step that does not fit, leaving the earlier steps applied.
func Apply[T any](target Mutable[T], script diff.Script[T]) error {
	cursor := 0
	for i, e := range script {
		switch e.Op {
		case diff.Match:
			if cursor >= target.Len() {
				return fmt.Errorf("step %d: match at %d past end (len %d)", i, cursor, target.Len())
			}
			cursor++
		case diff.Insert:
			target.Insert(cursor, e.New)
			cursor++
		case diff.Delete:
			if cursor >= target.Len() {
				return fmt.Errorf("step %d: delete at %d past end (len %d)", i, cursor, target.Len())
			}
			target.RemoveAt(cursor)
		case diff.Replace, diff.Modify:
			if cursor >= target.Len() {
				return fmt.Errorf("step %d: %s at %d past end (len %d)", i, e.Op, cursor, target.Len())
			}
			target.Set(cursor, e.New)
			cursor++
		default:
			return fmt.Errorf("step %d: unknown op %s", i, e.Op)
		}
	}
	if cursor != target.Len() {
		return fmt.Errorf("script covers %d elements, target has %d", cursor, target.Len())
	}
	return nil
}
