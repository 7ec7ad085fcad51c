package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	botStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("148")).Bold(true)
	detailStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))

	priorityColors = map[string]string{
		"High":   "203",
		"Medium": "214",
		"Low":    "241",
	}
)

func priorityBadge(p string) string {
	color, ok := priorityColors[p]
	if !ok {
		color = "241"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("[" + p + "]")
}
