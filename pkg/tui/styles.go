// Package tui plays a dialogue script in the terminal.
//
// It drives the same dialogue.Runtime and systems.EntityRenderer as the
// graphical player and renders the resulting entities as text.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - scene line
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - active choice, voice cue
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorError     = lipgloss.Color("#e63946") // Errors
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SceneStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	DialogueBoxStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Foreground(ColorText).
				Padding(0, 1)

	ChoiceStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(2)

	ChoiceActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	VoiceStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)
