package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#01B4E4")
	mutedColor  = lipgloss.Color("#8A8A8A")
	errorColor  = lipgloss.Color("#FF5F5F")

	brandStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginBottom(1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	yearStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
