// Package styles defines shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
	surfaceColor   = lipgloss.Color("#303030") // Button background

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for the focused element
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// LabelStyle for field labels and panel headings
	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	// HeadingStyle for sub-headings inside a panel
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// PlaceholderStyle for empty panels
	PlaceholderStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(secondaryColor)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// CardStyle for panel borders
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	// FocusedCardStyle for the panel holding keyboard focus
	FocusedCardStyle = CardStyle.
				BorderForeground(primaryColor)

	// ButtonStyle for the enabled run control
	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2)

	// DisabledButtonStyle for the run control while the agent is thinking
	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Background(surfaceColor).
				Padding(0, 2)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
