package field

import "github.com/charmbracelet/lipgloss"

// Style controls terminal rendering.
type Style struct {
	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Popup       lipgloss.Style
	PopupButton lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:      lipgloss.NewStyle(),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")),
		PopupButton: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
}
