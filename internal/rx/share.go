package rx

// Share multicasts src to all subscribers through a single upstream
// subscription and replays the latest value to late subscribers
// (Replay(1) + RefCount).
//
// The upstream subscription is created by the first subscriber and disposed
// when the last subscriber leaves; a later subscriber reconnects and starts
// from a fresh upstream subscription.
func Share[T any](src Observable[T]) Observable[T] {
	return &shared[T]{source: src}
}

type shared[T any] struct {
	source Observable[T]
	cur    *connection[T]
}

// connection is one upstream subscription together with its subscribers.
type connection[T any] struct {
	subject  *Subject[T]
	upstream Disposable
	refs     int
	last     T
	has      bool
}

func (s *shared[T]) Subscribe(o Observer[T]) Disposable {
	c := s.cur
	fresh := c == nil
	if fresh {
		c = &connection[T]{subject: NewSubject[T]()}
		s.cur = c
	}

	d := c.subject.Subscribe(o)
	c.refs++
	release := NewDisposable(func() {
		d.Dispose()
		c.refs--
		if c.refs > 0 {
			return
		}
		if s.cur == c {
			s.cur = nil
		}
		if c.upstream != nil {
			up := c.upstream
			c.upstream = nil
			up.Dispose()
		}
	})

	// A panic while connecting or replaying leaves nothing registered.
	ok := false
	defer func() {
		if !ok {
			release.Dispose()
		}
	}()

	if fresh {
		up := s.source.Subscribe(Funcs[T]{
			Next: func(v T) {
				c.last, c.has = v, true
				c.subject.OnNext(v)
			},
			Error: func(err error) {
				if s.cur == c {
					s.cur = nil
				}
				c.subject.OnError(err)
			},
		})
		if s.cur == c {
			c.upstream = up
		} else {
			// Every subscriber left (or the stream failed) during connect.
			up.Dispose()
		}
	} else if c.has {
		o.OnNext(c.last)
	}

	ok = true
	return release
}
