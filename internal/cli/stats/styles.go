package stats

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	barFullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	// heat levels from no completions to every habit completed
	heatStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

// bar renders pct (0-100) as a fixed width bar
func bar(pct int) string {
	pct = min(max(pct, 0), 100)
	filled := (pct*barWidth + 50) / 100
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// heatLevel maps a completion ratio onto an index into heatStyles
func heatLevel(ratio float64) int {
	switch {
	case ratio <= 0:
		return 0
	case ratio < 0.34:
		return 1
	case ratio < 0.67:
		return 2
	case ratio < 1:
		return 3
	default:
		return 4
	}
}
