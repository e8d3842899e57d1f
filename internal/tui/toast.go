package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pixelhive/pixelhive-cli/internal/notify"
)

// toastLifetime is how long a notification stays on screen. The bus only
// transports events; render lifetime is the presentation layer's call.
const toastLifetime = 4 * time.Second

type toast struct {
	event     notify.Event
	expiresAt time.Time
}

var (
	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	toastInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))
)

// collectToasts drains the bus into visible toasts.
func (m *model) collectToasts() {
	now := time.Now()
	for _, e := range m.events.Drain() {
		m.toasts = append(m.toasts, toast{event: e, expiresAt: now.Add(toastLifetime)})
	}
}

// expireToasts drops toasts past their lifetime.
func (m *model) expireToasts(now time.Time) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.expiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// renderToasts stacks pending notifications above the footer.
func (m model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	var s strings.Builder
	for i, t := range m.toasts {
		var line string
		switch t.event.Kind {
		case notify.KindSuccess:
			line = toastSuccessStyle.Render("✓ " + t.event.Message)
		case notify.KindError:
			line = toastErrorStyle.Render("✗ " + t.event.Message)
		default:
			line = toastInfoStyle.Render("• " + t.event.Message)
		}
		s.WriteString(line)
		if i < len(m.toasts)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}
