package textview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/popover/popup"
)

func TestCoordsAtPos(t *testing.T) {
	m := New(Config{Text: "abc\n\tx\n世界y"}).SetSize(20, 5).SetOrigin(2, 1)

	cases := []struct {
		pos  int
		want popup.Coords
	}{
		{pos: 0, want: popup.Coords{Top: 1, Bottom: 2, Left: 2, Right: 2}},
		{pos: 3, want: popup.Coords{Top: 1, Bottom: 2, Left: 5, Right: 5}},
		{pos: 4, want: popup.Coords{Top: 2, Bottom: 3, Left: 2, Right: 2}},
		{pos: 5, want: popup.Coords{Top: 2, Bottom: 3, Left: 6, Right: 6}},
		{pos: 9, want: popup.Coords{Top: 3, Bottom: 4, Left: 6, Right: 6}},
		{pos: 10, want: popup.Coords{Top: 3, Bottom: 4, Left: 7, Right: 7}},
	}
	for _, tc := range cases {
		got, err := m.CoordsAtPos(tc.pos)
		require.NoError(t, err, "pos=%d", tc.pos)
		assert.Equal(t, tc.want, got, "pos=%d", tc.pos)
	}
}

func TestCoordsAtPos_OutOfRange(t *testing.T) {
	m := New(Config{Text: "abc"})
	for _, pos := range []int{-1, 4} {
		_, err := m.CoordsAtPos(pos)
		assert.ErrorIs(t, err, ErrOffsetOutOfRange)
	}
}

func TestCoordsAtPos_FollowsScroll(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3\n4"}).SetSize(5, 2)
	m = m.SetCursor(8)

	got, err := m.CoordsAtPos(8)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Top)

	got, err = m.CoordsAtPos(0)
	require.NoError(t, err)
	assert.Equal(t, -3, got.Top, "rows above the viewport map above the bounds")
}

func TestBounds(t *testing.T) {
	m := New(Config{}).SetSize(30, 8).SetOrigin(4, 2)
	assert.Equal(t, popup.Rect{X: 4, Y: 2, Width: 30, Height: 8}, m.Bounds())
}

func TestWordBefore(t *testing.T) {
	m := New(Config{Text: "let profile = pro_fi\nx"})

	start, word := m.WordBefore(20)
	assert.Equal(t, 14, start)
	assert.Equal(t, "pro_fi", word)

	start, word = m.WordBefore(13)
	assert.Equal(t, 13, start)
	assert.Equal(t, "", word)

	start, word = m.WordBefore(22)
	assert.Equal(t, 21, start)
	assert.Equal(t, "x", word)
}

func TestUpdate_Editing(t *testing.T) {
	m := New(Config{Text: "ab\ncd"}).SetSize(10, 3)
	m = m.SetCursor(2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("xé")})
	assert.Equal(t, "abxé\ncd", m.Text())
	assert.Equal(t, 4, m.Cursor())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "abx\ncd", m.Text())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 6, m.Cursor(), "column clamps to the shorter line")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 4, m.Cursor())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 3, m.Cursor(), "left steps over the newline")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, "abxcd", m.Text())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "abx\ncd", m.Text())
	assert.Equal(t, 4, m.Cursor())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 6, m.Cursor())
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"}).Blur()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "ab", m.Text())
}

func TestCopiesDoNotShareEdits(t *testing.T) {
	m := New(Config{Text: "abc"}).SetCursor(1)
	snapshot := m
	m = m.InsertText("zz")

	assert.Equal(t, "abc", snapshot.Text())
	assert.Equal(t, "azzbc", m.Text())
}

func TestView_ClipsAndDrawsCaret(t *testing.T) {
	m := New(Config{Text: "abcdefgh\n\tq", Style: DefaultStyle()}).SetSize(4, 2)
	assertLines(t, viewLines(m), []string{"abcd", "    "})

	m = m.Blur().SetSize(6, 2)
	got := viewLines(m)
	for i := range got {
		got[i] = strings.TrimRight(got[i], " ")
	}
	assertLines(t, got, []string{"abcdef", "    q"})
}

func viewLines(m Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("line count: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
