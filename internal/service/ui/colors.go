package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors so the palette follows the user's terminal theme.
var (
	// TitleStyle cyan reads well on both dark and light backgrounds
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle is dimmed for secondary text
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	// AccentStyle marks the focused row and the active tab
	AccentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)
