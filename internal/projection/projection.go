package projection

import (
	"fmt"
	"log/slog"

	"github.com/roach88/rcc/internal/collection"
	"github.com/roach88/rcc/internal/diff"
	"github.com/roach88/rcc/internal/rx"
	"github.com/roach88/rcc/internal/snapshot"
)

// Projection mirrors a dynamic list into an ObservableList.
type Projection[T any] struct {
	list *ObservableList[T]
	sub  rx.Disposable
	err  error
}

// New subscribes to src and keeps the projection's list equal to src's
// latest snapshot. eq decides which elements match between snapshots;
// nil means snapshot.DefaultEqual.
//
// A failure during the initial subscription or while applying a script is
// reported by Err, after which the projection stops following src.
func New[T any](src collection.List[T], eq snapshot.EqualFunc[T]) *Projection[T] {
	return NewWith(src, eq, diff.BasicAligner[T]{})
}

// NewWith is New with a caller-chosen aligner.
func NewWith[T any](src collection.List[T], eq snapshot.EqualFunc[T], aligner diff.Aligner[T]) (p *Projection[T]) {
	p = &Projection[T]{list: NewObservableList[T]()}
	defer collection.RecoverPropagation(&p.err)

	p.sub = collection.ChangesWith(src, eq, aligner).Subscribe(rx.Funcs[diff.Script[T]]{
		Next:  p.apply,
		Error: p.fail,
	})
	if p.err != nil {
		p.sub.Dispose()
	}
	return p
}

func (p *Projection[T]) apply(script diff.Script[T]) {
	if p.err != nil {
		return
	}
	if err := Apply[T](p.list, script); err != nil {
		p.fail(fmt.Errorf("apply edit script: %w", err))
		return
	}
	c := script.Counts()
	slog.Debug("projection applied",
		"inserts", c.Insert,
		"deletes", c.Delete,
		"replaces", c.Replace+c.Modify,
		"len", p.list.Len())
}

func (p *Projection[T]) fail(err error) {
	if p.err != nil {
		return
	}
	p.err = err
	if p.sub != nil {
		p.sub.Dispose()
	}
}

// List returns the read-only projected list.
func (p *Projection[T]) List() View[T] { return p.list }

// Err returns the error that stopped the projection, if any.
func (p *Projection[T]) Err() error { return p.err }

// Dispose stops following the source. The list keeps its last contents.
func (p *Projection[T]) Dispose() {
	if p.sub != nil {
		p.sub.Dispose()
	}
}
