package diff

import "fmt"

// Op is the kind of one edit script element.
type Op int

const (
	// Match keeps the old element in place.
	Match Op = iota
	// Insert adds a new element at the cursor.
	Insert
	// Delete removes the old element at the cursor.
	Delete
	// Replace overwrites the old element with an unrelated new one.
	Replace
	// Modify overwrites the old element with a new one the aligner judged
	// similar.
	Modify
)

var opNames = [...]string{"match", "insert", "delete", "replace", "modify"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp converts a name produced by Op.String back to an Op.
func ParseOp(s string) (Op, error) {
	for i, name := range opNames {
		if name == s {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("unknown diff op %q", s)
}

// Element is one aligned position. OldIndex is -1 for Insert and NewIndex is
// -1 for Delete.
type Element[T any] struct {
	Op       Op
	OldIndex int
	NewIndex int
	Old      T
	New      T
}

// Section is a run of Len1 old elements aligned with Len2 new elements.
// Equal sections always have Len1 == Len2.
type Section struct {
	Equal bool
	Len1  int
	Len2  int
}

// AlignmentError reports an internal inconsistency between sections,
// aligner output and the inputs. It is raised as a panic.
type AlignmentError struct {
	Reason string
	OldLen int
	NewLen int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("diff: alignment invariant violated: %s (old=%d, new=%d)", e.Reason, e.OldLen, e.NewLen)
}

// Counts tallies a script by operation.
type Counts struct {
	Match   int
	Insert  int
	Delete  int
	Replace int
	Modify  int
}

// Edits returns the number of non-Match operations.
func (c Counts) Edits() int {
	return c.Insert + c.Delete + c.Replace + c.Modify
}
