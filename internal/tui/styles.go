package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	staleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	lockedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	pageCurStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	actionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	disabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	chartStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	chartAxisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "breaking":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	case "high":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	case "medium":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	default:
		return subtleStyle
	}
}
