package popup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ListView is a fixed-row-height list that only renders the rows inside its
// scroll window. It owns a scroll offset but no selection.
type ListView[T any] struct {
	handler Handler[T]
	items   []T
	offset  int
}

func NewListView[T any](handler Handler[T], items []T) *ListView[T] {
	return &ListView[T]{
		handler: handler.normalize(),
		items:   items,
	}
}

func (l *ListView[T]) Len() int { return len(l.items) }

// VisibleRows is min(MaxVisible, Len()).
func (l *ListView[T]) VisibleRows() int {
	return min(l.handler.MaxVisible, len(l.items))
}

// Height is the list's height without chrome.
func (l *ListView[T]) Height() int {
	return l.handler.ItemHeight * l.VisibleRows()
}

// Width is the list's width without chrome.
func (l *ListView[T]) Width() int { return l.handler.Width }

// Size is the rendered size including the chrome's frame.
func (l *ListView[T]) Size() Size {
	if len(l.items) == 0 {
		return Size{}
	}
	chrome := l.handler.Style.Chrome
	return Size{
		Width:  l.Width() + chrome.GetHorizontalFrameSize(),
		Height: l.Height() + chrome.GetVerticalFrameSize(),
	}
}

// Offset is the index of the first rendered item.
func (l *ListView[T]) Offset() int { return l.offset }

func (l *ListView[T]) maxOffset() int {
	return max(len(l.items)-l.VisibleRows(), 0)
}

// ScrollBy moves the scroll window by delta items.
func (l *ListView[T]) ScrollBy(delta int) {
	l.offset = clampInt(l.offset+delta, 0, l.maxOffset())
}

// ScrollTo moves the scroll window the least amount needed to show index.
func (l *ListView[T]) ScrollTo(index int) {
	if len(l.items) == 0 {
		return
	}
	index = clampInt(index, 0, len(l.items)-1)
	vis := l.VisibleRows()
	switch {
	case index < l.offset:
		l.offset = index
	case index >= l.offset+vis:
		l.offset = index - vis + 1
	}
	l.offset = clampInt(l.offset, 0, l.maxOffset())
}

func (l *ListView[T]) Update(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || mouse.Action != tea.MouseActionPress {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		l.ScrollBy(-1)
	case tea.MouseButtonWheelDown:
		l.ScrollBy(1)
	}
	return nil
}

func (l *ListView[T]) View() string {
	vis := l.VisibleRows()
	if vis == 0 {
		return ""
	}
	rows := make([]string, 0, vis)
	for i := l.offset; i < l.offset+vis; i++ {
		rows = append(rows, l.renderRow(i))
	}
	return l.handler.Style.Chrome.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (l *ListView[T]) renderRow(index int) string {
	h := l.handler
	lines := strings.Split(h.ItemView.RenderItem(l.items[index], index), "\n")
	if len(lines) > h.ItemHeight {
		lines = lines[:h.ItemHeight]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, h.Width, "")
	}
	return h.Style.Row.
		Width(h.Width).
		MaxWidth(h.Width).
		Height(h.ItemHeight).
		MaxHeight(h.ItemHeight).
		Render(strings.Join(lines, "\n"))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
