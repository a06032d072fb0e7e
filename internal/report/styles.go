package report

import "github.com/charmbracelet/lipgloss"

// Terminal styles. Lipgloss downgrades or strips colors on its own
// when the output is not a capable terminal.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1DB954"))

	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	lateNightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)
