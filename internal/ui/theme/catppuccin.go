package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Calm  = lipgloss.NewStyle().Foreground(Green)
)

// Category colors one unlock classification in summaries.
func Category(name string) lipgloss.Style {
	switch name {
	case "impulsive":
		return lipgloss.NewStyle().Foreground(Red)
	case "impulsive_conscious":
		return lipgloss.NewStyle().Foreground(Yellow)
	case "reactive":
		return lipgloss.NewStyle().Foreground(Sapphire)
	default:
		return Muted
	}
}
