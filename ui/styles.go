package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Klaijan/rootin/model"
)

var (
	// Colors
	colorSage  = lipgloss.Color("#C5D0B9")
	colorRose  = lipgloss.Color("#936964")
	colorCream = lipgloss.Color("#F5F0E6")
	colorGray  = lipgloss.Color("#6272A4")
	colorRed   = lipgloss.Color("#FF5555")
	colorAmber = lipgloss.Color("#F1FA8C")
	colorGreen = lipgloss.Color("#50FA7B")
	colorPanel = lipgloss.Color("#44475A")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSage)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRose)
	valueStyle    = lipgloss.NewStyle().Foreground(colorCream)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	helpStyle     = lipgloss.NewStyle().Foreground(colorGray)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle     = lipgloss.NewStyle().Foreground(colorAmber).Bold(true)
	critStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(colorPanel).Foreground(colorCream)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSage).
				Padding(0, 1)
)

func interactionStyle(t model.InteractionType) lipgloss.Style {
	switch t {
	case model.InteractionClash:
		return critStyle
	case model.InteractionCaution:
		return warnStyle
	default:
		return okStyle
	}
}

func scoreStyle(v float64) lipgloss.Style {
	switch {
	case v >= 7:
		return okStyle
	case v >= 4:
		return warnStyle
	default:
		return critStyle
	}
}
