package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decker502/birdsong/pkg/config"
)

// Run plays the script in the terminal until the user quits.
func Run(title, source string, cfg *config.PresentationConfig, startAt int) (*Model, error) {
	m := New(title, source, cfg, startAt)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return m, fmt.Errorf("running TUI: %w", err)
	}
	return m, nil
}
