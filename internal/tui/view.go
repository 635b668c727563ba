package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streaklit/internal/models"
)

// FormatElapsed renders a duration as H:MM:SS
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}

func (m Model) title() string {
	if m.kind == models.SessionFasting {
		return "🍽  Fasting"
	}
	return "😴 Sleeping"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := m.session.Elapsed(m.now)
	lines := []string{
		titleStyle.Render(m.title()),
		clockStyle.Render(FormatElapsed(elapsed)),
		mutedStyle.Render("Started " + m.session.StartTime.Local().Format("Mon Jan 2 3:04 PM")),
	}

	if m.session.TargetDuration != nil && *m.session.TargetDuration > 0 {
		target := time.Duration(*m.session.TargetDuration) * time.Minute
		ratio := min(float64(elapsed)/float64(target), 1)
		lines = append(lines, "", m.progress.ViewAs(ratio))
		if elapsed >= target {
			lines = append(lines, successStyle.Render("Target reached"))
		} else {
			lines = append(lines, mutedStyle.Render(FormatElapsed(target-elapsed)+" to go"))
		}
	}

	if m.err != nil {
		lines = append(lines, "", dangerStyle.Render("Error: "+m.err.Error()))
	}
	lines = append(lines, "", m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
