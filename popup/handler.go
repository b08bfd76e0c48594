package popup

import "fmt"

const (
	DefaultItemHeight = 25
	DefaultMaxVisible = 10
	DefaultWidth      = 180
)

// ItemView renders one candidate as the content of a list row. The list clips
// and pads the returned string to the row's height and width.
type ItemView[T any] interface {
	RenderItem(item T, index int) string
}

// ItemViewFunc adapts a function to ItemView.
type ItemViewFunc[T any] func(item T, index int) string

func (f ItemViewFunc[T]) RenderItem(item T, index int) string { return f(item, index) }

// Handler describes how a completion list is drawn.
//
// Zero or negative sizes fall back to the Default* constants. Hosts on a
// terminal grid usually want ItemHeight 1 and a Width well below the default.
type Handler[T any] struct {
	ItemView ItemView[T]

	ItemHeight int
	MaxVisible int
	Width      int

	// MeasuredPlacement places the popup using the list's rendered size
	// instead of AssumedSize.
	MeasuredPlacement bool

	Style Style
}

func (h Handler[T]) normalize() Handler[T] {
	if h.ItemView == nil {
		h.ItemView = ItemViewFunc[T](defaultItemView[T])
	}
	h.ItemHeight = normalizeItemHeight(h.ItemHeight)
	h.MaxVisible = normalizeMaxVisible(h.MaxVisible)
	h.Width = normalizeWidth(h.Width)
	return h
}

func defaultItemView[T any](item T, _ int) string { return fmt.Sprint(item) }

func normalizeItemHeight(h int) int {
	if h <= 0 {
		return DefaultItemHeight
	}
	return h
}

func normalizeMaxVisible(n int) int {
	if n <= 0 {
		return DefaultMaxVisible
	}
	return n
}

func normalizeWidth(w int) int {
	if w <= 0 {
		return DefaultWidth
	}
	return w
}
