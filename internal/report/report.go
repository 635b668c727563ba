// Package report renders the monthly habit report as markdown.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/stats"
	"github.com/julianstephens/streaklit/internal/tracker"
)

// Data is everything the monthly report shows
type Data struct {
	Month     string
	UserName  string
	Summary   stats.MonthlySummary
	Daily     []int
	Breakdown []stats.HabitCount
	Streaks   map[string]stats.Streak
	Overall   stats.OverallStats
}

// Build gathers the report data for month (current month when empty)
func Build(svc *tracker.Service, month string) (Data, error) {
	if month == "" {
		month = svc.CurrentMonth()
	}
	summary, err := svc.MonthlySummary(month)
	if err != nil {
		return Data{}, err
	}
	daily, err := svc.DailyStats(month)
	if err != nil {
		return Data{}, err
	}
	breakdown, err := svc.HabitBreakdown(month)
	if err != nil {
		return Data{}, err
	}

	streaks := make(map[string]stats.Streak, len(breakdown))
	for _, hc := range breakdown {
		streaks[hc.Habit.ID] = svc.CalculateStreak(hc.Habit.ID)
	}

	return Data{
		Month:     month,
		UserName:  svc.UserName(),
		Summary:   summary,
		Daily:     daily,
		Breakdown: breakdown,
		Streaks:   streaks,
		Overall:   svc.OverallStats(),
	}, nil
}

// Markdown lays the report out as a markdown document
func Markdown(d Data) string {
	var b strings.Builder

	title := d.Month
	start, err := time.Parse(constants.MonthFormat, d.Month)
	if err == nil {
		title = start.Format("January 2006")
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if d.UserName != "" {
		fmt.Fprintf(&b, "Report for **%s**.\n\n", escape(d.UserName))
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Completions: **%d**\n", d.Summary.Completions)
	fmt.Fprintf(&b, "- Active days: **%d** of %d\n", d.Summary.ActiveDays, len(d.Daily))
	if day, count := bestDay(d.Daily); count > 0 && err == nil {
		fmt.Fprintf(&b, "- Best day: **%s** with %d habits\n", start.AddDate(0, 0, day-1).Format("Jan 2"), count)
	}
	fmt.Fprintf(&b, "- Longest streak overall: **%d** days\n\n", d.Overall.LongestStreak)

	b.WriteString("## Habits\n\n")
	if len(d.Breakdown) == 0 {
		b.WriteString("_No habits completed this month._\n")
		return b.String()
	}
	b.WriteString("| Habit | Completions | Current streak | Longest streak |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, hc := range d.Breakdown {
		s := d.Streaks[hc.Habit.ID]
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", habitLabel(hc.Habit), hc.Count, s.Current, s.Longest)
	}
	return b.String()
}

// bestDay returns the 1-based day with the most completions; ties go to the earliest
func bestDay(daily []int) (day, count int) {
	for i, c := range daily {
		if c > count {
			day, count = i+1, c
		}
	}
	return day, count
}

func habitLabel(h models.Habit) string {
	label := escape(h.Title)
	if h.Icon != "" {
		label = h.Icon + " " + label
	}
	return label
}

var escaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`)

func escape(s string) string {
	return escaper.Replace(s)
}

// Render styles markdown for the terminal following the app theme
func Render(md string, theme models.Theme, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch theme {
	case models.ThemeLight, models.ThemeDark:
		opts = append(opts, glamour.WithStylePath(string(theme)))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}
	return render(md, opts...)
}

func render(md string, opts ...glamour.TermRendererOption) (string, error) {
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
