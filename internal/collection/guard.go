package collection

// guard1 wraps a one-argument callback so that a panic inside it unwinds as
// a *CallbackError.
func guard1[A, R any](op string, f func(A) R) func(A) R {
	return func(a A) R {
		defer rethrow(op)
		return f(a)
	}
}

// guard2 is guard1 for two-argument callbacks.
func guard2[A, B, R any](op string, f func(A, B) R) func(A, B) R {
	return func(a A, b B) R {
		defer rethrow(op)
		return f(a, b)
	}
}

func rethrow(op string) {
	if r := recover(); r != nil {
		panic(wrapPanic(op, r))
	}
}

// reentrancyGuard bounds how deeply a source may be set from inside its own
// propagation.
type reentrancyGuard struct {
	limit int
	depth int
}

func (g *reentrancyGuard) enter() error {
	if g.depth >= g.limit {
		return &ReentrancyError{Depth: g.depth + 1, Limit: g.limit}
	}
	g.depth++
	return nil
}

func (g *reentrancyGuard) exit() {
	g.depth--
}
