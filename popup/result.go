package popup

import (
	"context"
	"errors"
	"sync"
)

// Result is what a completion source produced for one anchor.
type Result[T any] struct {
	// Pos is the document offset the popup is attached to.
	Pos   int
	Items Items[T]
}

// Items is a candidate list that is either available now or still being
// computed.
type Items[T any] interface {
	// Now returns the list when it is already available.
	Now() ([]T, bool)
	// Await blocks until the list is available, it failed, or ctx is done.
	Await(ctx context.Context) ([]T, error)
}

var errNilPending = errors.New("popup: pending computation is nil")

type readyItems[T any] []T

// Ready wraps an already computed candidate list.
func Ready[T any](items []T) Items[T] { return readyItems[T](items) }

func (r readyItems[T]) Now() ([]T, bool) { return []T(r), true }

func (r readyItems[T]) Await(context.Context) ([]T, error) { return []T(r), nil }

// Deferred is a candidate list settled later by whoever holds it. Only the
// first Resolve or Reject takes effect.
type Deferred[T any] struct {
	once  sync.Once
	done  chan struct{}
	items []T
	err   error
}

func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Pending starts fn on its own goroutine and returns its eventual result.
// The computation runs once regardless of how many times it is awaited.
func Pending[T any](ctx context.Context, fn func(context.Context) ([]T, error)) *Deferred[T] {
	d := NewDeferred[T]()
	if fn == nil {
		d.Reject(errNilPending)
		return d
	}
	go func() {
		items, err := fn(ctx)
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(items)
	}()
	return d
}

func (d *Deferred[T]) Resolve(items []T) {
	d.once.Do(func() {
		d.items = items
		close(d.done)
	})
}

func (d *Deferred[T]) Reject(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Now reports a settled, successful list. A pending or rejected Deferred
// reports false.
func (d *Deferred[T]) Now() ([]T, bool) {
	select {
	case <-d.done:
		return d.items, d.err == nil
	default:
		return nil, false
	}
}

func (d *Deferred[T]) Await(ctx context.Context) ([]T, error) {
	select {
	case <-d.done:
		return d.items, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
