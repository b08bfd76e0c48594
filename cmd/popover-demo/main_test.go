package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iw2rmb/popover/internal/config"
	"github.com/iw2rmb/popover/popup"
)

func step(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(model), cmd
}

// settle runs cmd and feeds its RenderedMsg back into the model.
func settle(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	rendered, ok := msg.(popup.RenderedMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, rendered.Err)
	m, _ = step(t, m, rendered)
	return m
}

func TestTriggerShowsAndEscDismisses(t *testing.T) {
	m := newModel(config.Default(), zap.NewNop())
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlAt})
	m = settle(t, m, cmd)

	require.NotNil(t, m.popup)
	assert.True(t, m.popup.Mounted())
	assert.Equal(t, 1, m.doc.Len())
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "print")
	assert.Contains(t, view, "profile")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.popup)
	assert.Equal(t, 0, m.doc.Len())
	assert.NotContains(t, ansi.Strip(m.View()), "println")
}

func TestTypingNarrowsOpenPopup(t *testing.T) {
	m := newModel(config.Default(), zap.NewNop())
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlAt})
	m = settle(t, m, cmd)

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("in")})
	m = settle(t, m, cmd)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "println")
	assert.NotContains(t, view, "profile")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Nil(t, m.popup, "leaving the word dismisses the popup")
}

func TestPopupAnchorsBelowWordStart(t *testing.T) {
	m := newModel(config.Default(), zap.NewNop())
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlAt})
	m = settle(t, m, cmd)

	start, _ := m.editor.WordBefore(m.editor.Cursor())
	caret, err := m.editor.CoordsAtPos(start)
	require.NoError(t, err)

	pos, ok := m.popup.Position()
	require.True(t, ok)
	assert.Equal(t, popup.Position{Top: caret.Bottom, Left: caret.Right}, pos)
}

func TestAsyncLookupMountsAfterLatency(t *testing.T) {
	cfg := config.Default()
	cfg.Latency = 5 * time.Millisecond
	m := newModel(cfg, zap.NewNop())
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlAt})
	assert.False(t, m.popup.Mounted())

	m = settle(t, m, cmd)
	assert.True(t, m.popup.Mounted())
}
