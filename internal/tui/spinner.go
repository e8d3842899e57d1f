package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Spinner is a small braille loading spinner, advanced by toast ticks.
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner.
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next advances the spinner to the next frame.
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame.
func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// LoadingOverlay centers a spinner and message in the available area. The
// guard renders this while the session is still resolving so protected
// content never flashes early.
func LoadingOverlay(width, height int, spinner *Spinner, message string) string {
	spinnerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	content := fmt.Sprintf("%s %s",
		spinnerStyle.Render(spinner.View()),
		messageStyle.Render(message))

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(content)
}
