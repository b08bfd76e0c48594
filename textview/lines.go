package textview

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/popover/internal/grapheme"
)

// lineAt returns the row holding pos and the offset that row starts at.
func (m Model) lineAt(pos int) (row, start int) {
	for i := 0; i < pos && i < len(m.text); i++ {
		if m.text[i] == '\n' {
			row++
			start = i + 1
		}
	}
	return row, start
}

func (m Model) lineEnd(pos int) int {
	for i := pos; i < len(m.text); i++ {
		if m.text[i] == '\n' {
			return i
		}
	}
	return len(m.text)
}

// prevBoundary is the grapheme boundary left of pos. A line start steps over
// the preceding newline.
func (m Model) prevBoundary(pos int) int {
	if pos <= 0 {
		return 0
	}
	_, start := m.lineAt(pos)
	if pos == start {
		return pos - 1
	}
	last := grapheme.Last(string(m.text[start:pos]))
	return pos - len([]rune(last))
}

func (m Model) nextBoundary(pos int) int {
	if pos >= len(m.text) {
		return len(m.text)
	}
	if m.text[pos] == '\n' {
		return pos + 1
	}
	first := grapheme.First(string(m.text[pos:m.lineEnd(pos)]))
	return pos + len([]rune(first))
}

// verticalTarget moves the caret dir rows, keeping its cell column where the
// target row is long enough.
func (m Model) verticalTarget(dir int) int {
	row, start := m.lineAt(m.cursor)
	col := grapheme.Width(string(m.text[start:m.cursor]), m.cfg.TabWidth)

	lines := strings.Split(string(m.text), "\n")
	target := row + dir
	if target < 0 || target >= len(lines) {
		return m.cursor
	}

	off := 0
	for i := 0; i < target; i++ {
		off += len([]rune(lines[i])) + 1
	}
	used := 0
	for _, cluster := range grapheme.Split(lines[target]) {
		w := grapheme.CellWidth(cluster, used, m.cfg.TabWidth)
		if used+w > col {
			break
		}
		used += w
		off += len([]rune(cluster))
	}
	return off
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m Model) renderContent() string {
	lines := strings.Split(string(m.text), "\n")
	cursorRow, cursorStart := m.lineAt(m.cursor)
	cursorCol := m.cursor - cursorStart

	out := make([]string, len(lines))
	for row, line := range lines {
		caret := -1
		if m.focused && row == cursorRow {
			caret = cursorCol
		}
		out[row] = m.renderLine(line, caret)
	}
	return strings.Join(out, "\n")
}

// renderLine expands tabs, draws the caret at rune column caret (or none when
// negative) and clips the line to the view width.
func (m Model) renderLine(line string, caret int) string {
	st := m.cfg.Style
	var sb strings.Builder
	col, runeCol := 0, 0
	drawn := false
	for _, cluster := range grapheme.Split(line) {
		w := grapheme.CellWidth(cluster, col, m.cfg.TabWidth)
		text := cluster
		if cluster == "\t" {
			text = strings.Repeat(" ", w)
		}
		if runeCol == caret {
			sb.WriteString(st.Cursor.Render(text))
			drawn = true
		} else {
			sb.WriteString(st.Text.Render(text))
		}
		col += w
		runeCol += len([]rune(cluster))
	}
	if caret >= 0 && !drawn {
		sb.WriteString(st.Cursor.Render(" "))
	}

	if width := m.viewport.Width; width > 0 {
		return ansi.Truncate(sb.String(), width, "")
	}
	return sb.String()
}
