package rx

// Disposable releases a subscription or other owned resource.
// Dispose must be idempotent.
type Disposable interface {
	Dispose()
}

type funcDisposable struct {
	fn       func()
	disposed bool
}

// NewDisposable wraps fn so that it runs at most once.
func NewDisposable(fn func()) Disposable {
	return &funcDisposable{fn: fn}
}

func (d *funcDisposable) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	if d.fn != nil {
		d.fn()
	}
}

// Empty returns a Disposable that does nothing.
func Empty() Disposable {
	return NewDisposable(nil)
}

// Composite owns a group of disposables and releases them together,
// in the order they were added.
type Composite struct {
	items    []Disposable
	disposed bool
}

// NewComposite creates a Composite holding the given disposables.
func NewComposite(items ...Disposable) *Composite {
	return &Composite{items: append([]Disposable(nil), items...)}
}

// Add registers d with the group. If the group is already disposed,
// d is disposed immediately.
func (c *Composite) Add(d Disposable) {
	if d == nil {
		return
	}
	if c.disposed {
		d.Dispose()
		return
	}
	c.items = append(c.items, d)
}

// Len returns the number of disposables currently owned.
func (c *Composite) Len() int {
	return len(c.items)
}

// Dispose releases every owned disposable.
func (c *Composite) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	items := c.items
	c.items = nil
	for _, d := range items {
		d.Dispose()
	}
}

// Serial holds at most one disposable. Replacing it disposes the
// previous one first.
type Serial struct {
	current  Disposable
	disposed bool
}

// Set disposes the current disposable and stores d in its place.
func (s *Serial) Set(d Disposable) {
	if s.disposed {
		if d != nil {
			d.Dispose()
		}
		return
	}
	prev := s.current
	s.current = nil
	if prev != nil {
		prev.Dispose()
	}
	s.current = d
}

// Dispose releases the current disposable; later Set calls dispose
// their argument immediately.
func (s *Serial) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.current != nil {
		s.current.Dispose()
		s.current = nil
	}
}
