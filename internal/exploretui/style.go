package exploretui

import "github.com/charmbracelet/lipgloss"

var (
	borderASCII = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Bold(true).Padding(0, 1)
	breadcrumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)

	paneStyle       = lipgloss.NewStyle().Border(borderASCII).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	paneActiveStyle = paneStyle.Copy().BorderForeground(lipgloss.Color("33"))

	promptLabelStyle = lipgloss.NewStyle().Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	menuItemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	menuItemSelectedStyle = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("33")).SetString("> ")
)
