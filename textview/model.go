package textview

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/popover/internal/grapheme"
	"github.com/iw2rmb/popover/popup"
)

const defaultTabWidth = 4

var ErrOffsetOutOfRange = errors.New("textview: offset out of range")

// Config configures the Model.
type Config struct {
	Text     string
	TabWidth int
	Style    Style
	KeyMap   KeyMap
}

// Model is a Bubble Tea component holding a text and a caret.
//
// Edits always allocate a new text slice, so copies of a Model handed to
// other goroutines stay valid.
type Model struct {
	cfg    Config
	text   []rune
	cursor int

	originX, originY int
	focused          bool

	viewport viewport.Model
}

var _ popup.EditorView = Model{}

func New(cfg Config) Model {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = defaultTabWidth
	}
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	m := Model{
		cfg:      cfg,
		text:     []rune(cfg.Text),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.rebuildContent()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Text() string { return string(m.text) }

// Len is the number of runes in the text.
func (m Model) Len() int { return len(m.text) }

func (m Model) Cursor() int { return m.cursor }

func (m Model) SetCursor(off int) Model {
	m.cursor = clampInt(off, 0, len(m.text))
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)
	m.rebuildContent()
	m.followCursor()
	return m
}

// SetOrigin places the view's top-left corner on the screen.
func (m Model) SetOrigin(x, y int) Model {
	m.originX = x
	m.originY = y
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// Bounds is the view's box on the screen.
func (m Model) Bounds() popup.Rect {
	return popup.Rect{
		X:      m.originX,
		Y:      m.originY,
		Width:  m.viewport.Width,
		Height: m.viewport.Height,
	}
}

// CoordsAtPos maps a rune offset to screen cells. Offsets on rows scrolled
// out of view map outside Bounds.
func (m Model) CoordsAtPos(pos int) (popup.Coords, error) {
	if pos < 0 || pos > len(m.text) {
		return popup.Coords{}, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, pos, len(m.text))
	}
	row, start := m.lineAt(pos)
	col := grapheme.Width(string(m.text[start:pos]), m.cfg.TabWidth)

	top := m.originY + row - m.viewport.YOffset
	left := m.originX + col
	return popup.Coords{Top: top, Bottom: top + 1, Left: left, Right: left}, nil
}

// WordBefore returns the word ending at pos and the offset it starts at.
func (m Model) WordBefore(pos int) (start int, word string) {
	pos = clampInt(pos, 0, len(m.text))
	_, lineStart := m.lineAt(pos)
	clusters := grapheme.Split(string(m.text[lineStart:pos]))

	start = pos
	for i := len(clusters) - 1; i >= 0; i-- {
		if !grapheme.IsWord(clusters[i]) {
			break
		}
		start -= len([]rune(clusters[i]))
	}
	return start, string(m.text[start:pos])
}

// InsertText inserts s at the caret and moves the caret past it.
func (m Model) InsertText(s string) Model {
	if s == "" {
		return m
	}
	ins := []rune(s)
	m.text = slices.Concat(m.text[:m.cursor], ins, m.text[m.cursor:])
	m.cursor += len(ins)
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) deleteRange(from, to int) Model {
	from = clampInt(from, 0, len(m.text))
	to = clampInt(to, from, len(m.text))
	if from == to {
		return m
	}
	m.text = slices.Concat(m.text[:from], m.text[to:])
	m.cursor = from
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		return m.SetCursor(m.prevBoundary(m.cursor))
	case key.Matches(msg, km.Right):
		return m.SetCursor(m.nextBoundary(m.cursor))
	case key.Matches(msg, km.Up):
		return m.SetCursor(m.verticalTarget(-1))
	case key.Matches(msg, km.Down):
		return m.SetCursor(m.verticalTarget(1))
	case key.Matches(msg, km.Home):
		_, start := m.lineAt(m.cursor)
		return m.SetCursor(start)
	case key.Matches(msg, km.End):
		return m.SetCursor(m.lineEnd(m.cursor))
	case key.Matches(msg, km.Backspace):
		return m.deleteRange(m.prevBoundary(m.cursor), m.cursor)
	case key.Matches(msg, km.Delete):
		return m.deleteRange(m.cursor, m.nextBoundary(m.cursor))
	case key.Matches(msg, km.Enter):
		return m.InsertText("\n")
	}

	switch msg.Type {
	case tea.KeyRunes:
		return m.InsertText(string(msg.Runes))
	case tea.KeySpace:
		return m.InsertText(" ")
	case tea.KeyTab:
		return m.InsertText("\t")
	}
	return m
}

func (m Model) View() string { return m.viewport.View() }

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row, _ := m.lineAt(m.cursor)
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
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
