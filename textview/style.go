package textview

import "github.com/charmbracelet/lipgloss"

// Style controls the view's rendering.
type Style struct {
	Text   lipgloss.Style
	Cursor lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:   lipgloss.NewStyle(),
		Cursor: lipgloss.NewStyle().Reverse(true),
	}
}
