package timeline

import "github.com/charmbracelet/lipgloss/v2"

// Styles controls the viewer chrome.
type Styles struct {
	Title  lipgloss.Style
	Footer lipgloss.Style
}

// DefaultStyles returns the stock chrome.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#31567D")).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
