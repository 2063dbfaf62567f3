package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorBrown  = lipgloss.Color("#503D2D")
	colorTeal   = lipgloss.Color("#1F9295")
	colorCream  = lipgloss.Color("#F0ECC9")
	colorAmber  = lipgloss.Color("#E3AD43")
	colorOrange = lipgloss.Color("#D44C1A")
)

var (
	bannerStyle   = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(colorAmber).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(colorTeal)
	selectedStyle = lipgloss.NewStyle().Foreground(colorCream).Background(colorTeal).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(colorBrown)
	errorStyle    = lipgloss.NewStyle().Foreground(colorOrange)
	infoStyle     = lipgloss.NewStyle().Foreground(colorTeal)
	helpStyle     = lipgloss.NewStyle().Foreground(colorBrown).Italic(true)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAmber).
			Padding(1, 2)
)
