package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Standard ANSI colors so the user's terminal theme applies.
	primaryColor   = lipgloss.ANSIColor(14)
	secondaryColor = lipgloss.ANSIColor(8)
	userColor      = lipgloss.ANSIColor(12)
	assistantColor = lipgloss.ANSIColor(13)
	selectedColor  = lipgloss.ANSIColor(10)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(secondaryColor)

	userMsgStyle = lipgloss.NewStyle().
			Foreground(userColor).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(assistantColor).
				Bold(true)

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(secondaryColor)

	chipSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(selectedColor).
				Bold(true)

	chipCursorStyle = lipgloss.NewStyle().Underline(true)
)
