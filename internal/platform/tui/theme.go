package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles shared by the menu, scoreboard and game footer.
type Theme struct {
	// Menu styles
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style

	// Footer and help styles
	Help   lipgloss.Style
	Status lipgloss.Style

	// Table styles
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	Background lipgloss.Color
	Empty      lipgloss.Style
	Panel      lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),

		Border:     lipgloss.Color("240"),
		Highlight:  lipgloss.Color("229"),
		Background: lipgloss.Color("57"),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
