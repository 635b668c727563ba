// Package tui implements the live view of a running sleep or fasting session.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streaklit/internal/models"
)

// SessionEnder ends a running session by id
type SessionEnder interface {
	EndSession(kind models.SessionKind, id string) (models.Session, error)
}

type Model struct {
	sessions SessionEnder
	kind     models.SessionKind
	session  models.Session
	now      time.Time
	keys     KeyMap
	help     help.Model
	progress progress.Model
	width    int
	height   int
	stopped  bool
	quitting bool
	err      error
}

func NewModel(sessions SessionEnder, kind models.SessionKind, session models.Session, now time.Time) Model {
	return Model{
		sessions: sessions,
		kind:     kind,
		session:  session,
		now:      now,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Session returns the session as last seen, ended if it was stopped from the view
func (m Model) Session() models.Session {
	return m.session
}

func (m Model) Stopped() bool {
	return m.stopped
}

func (m Model) Err() error {
	return m.err
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// Run shows the view until the user stops the session or quits
func Run(m Model) (Model, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}
