package popup

import "github.com/charmbracelet/lipgloss"

// Style controls the popup's rendering.
type Style struct {
	// Chrome wraps the whole list. Its frame (border, padding, margin) adds to
	// the list's measured size.
	Chrome lipgloss.Style
	// Row is applied to every row before it is clipped to the row box.
	Row lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Chrome: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Row: lipgloss.NewStyle().Background(lipgloss.Color("236")),
	}
}
