package popup

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrDetached is returned when rendering into a container that is not
	// attached to a Document.
	ErrDetached = errors.New("popup: container is not attached to a document")
	// ErrSuperseded is returned when a pending render was overtaken by a
	// later Render or by Destroy before its candidates arrived.
	ErrSuperseded = errors.New("popup: render superseded")
)

// EditorView is the editor the popup is anchored to.
type EditorView interface {
	// Bounds is the editor's box in screen cells.
	Bounds() Rect
	// CoordsAtPos maps a document offset to screen cells.
	CoordsAtPos(pos int) (Coords, error)
}

// Render positions c near result.Pos and mounts a list of result's
// candidates. Ready candidates are mounted before Render returns; pending
// ones are awaited on a separate goroutine. The returned Signal settles when
// mounting is done or has failed. A nil c settles with ErrDetached.
func Render[T any](ctx context.Context, view EditorView, handler Handler[T], result Result[T], c *Container) *Signal {
	if c == nil {
		return settledSignal(ErrDetached)
	}
	gen := c.begin()

	if items, ok := readyNow(result.Items); ok {
		return settledSignal(show(view, handler, result.Pos, items, c, gen))
	}

	sig := newSignal()
	go func() {
		items, err := await(ctx, result.Items)
		if err != nil {
			c.logger.Warn("completion candidates failed", zap.Int("pos", result.Pos), zap.Error(err))
			sig.settle(err)
			return
		}
		sig.settle(show(view, handler, result.Pos, items, c, gen))
	}()
	return sig
}

func readyNow[T any](items Items[T]) ([]T, bool) {
	if items == nil {
		return nil, true
	}
	return items.Now()
}

func await[T any](ctx context.Context, items Items[T]) ([]T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return items.Await(ctx)
}

func show[T any](view EditorView, handler Handler[T], pos int, items []T, c *Container, gen uint64) error {
	if !c.current(gen) {
		c.logger.Debug("completion popup render superseded", zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	viewport, ok := c.viewport()
	if !ok {
		return ErrDetached
	}
	caret, err := view.CoordsAtPos(pos)
	if err != nil {
		return fmt.Errorf("popup: caret coordinates at %d: %w", pos, err)
	}

	list := NewListView(handler, items)
	size := AssumedSize
	if list.handler.MeasuredPlacement {
		size = list.Size()
	}
	at := Place(view.Bounds(), caret, size, viewport)

	if !c.mount(gen, at, list) {
		c.logger.Debug("completion popup render superseded", zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	c.logger.Debug("completion popup mounted",
		zap.Int("pos", pos),
		zap.Int("items", len(items)),
		zap.Int("top", at.Top),
		zap.Int("left", at.Left),
	)
	return nil
}
