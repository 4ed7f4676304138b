package cli

import "github.com/charmbracelet/lipgloss"

// Styles used across the CLI commands
var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFA500")).
		Bold(true).
		PaddingBottom(1)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC")).
		Width(24)

	valueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF"))

	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#32CD32")).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6347")).
		Bold(true)
)

// statusStyle colors a subscription status.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "active":
		return successStyle
	case "expiring_soon":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	default:
		return warningStyle
	}
}
