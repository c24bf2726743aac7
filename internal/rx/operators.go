package rx

// Streams in this package never complete; they end by disposal or by an
// error. Operators forward errors downstream unchanged.

// Return emits v synchronously to every subscriber.
func Return[T any](v T) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Disposable {
		o.OnNext(v)
		return Empty()
	})
}

// Throw delivers err synchronously to every subscriber.
func Throw[T any](err error) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Disposable {
		o.OnError(err)
		return Empty()
	})
}

// Map transforms every value of src with f.
func Map[T, U any](src Observable[T], f func(T) U) Observable[U] {
	return ObservableFunc[U](func(o Observer[U]) Disposable {
		return src.Subscribe(Funcs[T]{
			Next:  func(v T) { o.OnNext(f(v)) },
			Error: o.OnError,
		})
	})
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Disposable {
		return src.Subscribe(Funcs[T]{
			Next: func(v T) {
				if keep(v) {
					o.OnNext(v)
				}
			},
			Error: o.OnError,
		})
	})
}

// CombineLatest2 emits f(a, b) whenever either input emits, once both
// inputs have produced at least one value.
func CombineLatest2[A, B, R any](a Observable[A], b Observable[B], f func(A, B) R) Observable[R] {
	return ObservableFunc[R](func(o Observer[R]) Disposable {
		var (
			va         A
			vb         B
			hasA, hasB bool
			done       bool
		)
		group := NewComposite()
		fail := func(err error) {
			if done {
				return
			}
			done = true
			group.Dispose()
			o.OnError(err)
		}
		emit := func() {
			if hasA && hasB && !done {
				o.OnNext(f(va, vb))
			}
		}
		ok := false
		defer func() {
			if !ok {
				done = true
				group.Dispose()
			}
		}()

		group.Add(a.Subscribe(Funcs[A]{
			Next: func(v A) {
				va, hasA = v, true
				emit()
			},
			Error: fail,
		}))
		if done {
			ok = true
			return group
		}
		group.Add(b.Subscribe(Funcs[B]{
			Next: func(v B) {
				vb, hasB = v, true
				emit()
			},
			Error: fail,
		}))
		ok = true
		return group
	})
}

// Switch subscribes to the most recent inner observable emitted by src,
// disposing the previous inner subscription before subscribing the next.
//
// Values from a superseded inner are dropped even if they arrive while the
// replacement is being subscribed.
func Switch[T any](src Observable[Observable[T]]) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Disposable {
		var (
			inner Serial
			gen   int
			done  bool
		)
		var outer Disposable
		fail := func(err error) {
			if done {
				return
			}
			done = true
			inner.Dispose()
			if outer != nil {
				outer.Dispose()
			}
			o.OnError(err)
		}

		ok := false
		defer func() {
			if !ok {
				done = true
				inner.Dispose()
			}
		}()

		outer = src.Subscribe(Funcs[Observable[T]]{
			Next: func(next Observable[T]) {
				if done {
					return
				}
				gen++
				mine := gen
				inner.Set(nil)
				d := next.Subscribe(Funcs[T]{
					Next: func(v T) {
						if mine == gen && !done {
							o.OnNext(v)
						}
					},
					Error: func(err error) {
						if mine == gen {
							fail(err)
						}
					},
				})
				if mine == gen && !done {
					inner.Set(d)
				} else {
					d.Dispose()
				}
			},
			Error: fail,
		})
		ok = true
		if done {
			outer.Dispose()
		}
		return NewDisposable(func() {
			done = true
			outer.Dispose()
			inner.Dispose()
		})
	})
}

// Pair holds two consecutive values of a stream.
type Pair[T any] struct {
	Previous T
	Current  T
}

// Pairwise emits each value of src together with its predecessor. The first
// value is paired with seed, so every value of src produces exactly one pair.
func Pairwise[T any](src Observable[T], seed T) Observable[Pair[T]] {
	return ObservableFunc[Pair[T]](func(o Observer[Pair[T]]) Disposable {
		prev := seed
		return src.Subscribe(Funcs[T]{
			Next: func(v T) {
				p := Pair[T]{Previous: prev, Current: v}
				prev = v
				o.OnNext(p)
			},
			Error: o.OnError,
		})
	})
}
