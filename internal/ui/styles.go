package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#8257E5")).Padding(0, 1)
	counterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#8257E5"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB863"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B2B2B2"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB863")).Strikethrough(true)
	disabledStyle = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)
