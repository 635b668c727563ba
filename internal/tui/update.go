package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streaklit/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 10), 60)

	case TickMsg:
		if m.quitting || m.stopped {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Stop):
			if m.stopped {
				return m, nil
			}
			ended, err := m.sessions.EndSession(m.kind, m.session.ID)
			if err != nil {
				logger.Error("failed to stop session", "kind", m.kind, "id", m.session.ID, "error", err)
				m.err = err
				return m, nil
			}
			m.session = ended
			m.stopped = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}
