package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/report"
	"github.com/julianstephens/streaklit/internal/stats"
)

type StatsCmd struct {
	JSON bool `help:"Print machine-readable JSON."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	overall := ctx.Tracker.OverallStats()
	if c.JSON {
		out, err := json.MarshalIndent(overall, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		ctx.println(string(out))
		return nil
	}

	ctx.printf("Habits:            %d\n", overall.TotalHabits)
	ctx.printf("Completed today:   %d (%d%%)\n", overall.CompletedToday, overall.TodayPercentage)
	ctx.printf("Total completions: %d\n", overall.TotalCompletions)
	ctx.printf("Longest streak:    %d\n", overall.LongestStreak)
	return nil
}

// heatColors are the cell backgrounds for each heat level, darkest first
var heatColors = [stats.HeatLevels]lipgloss.Color{"236", "22", "28", "34", "46"}

var heatHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

type HeatmapCmd struct {
	Month string `help:"Month in YYYY-MM format (default: current month)."`
}

func (c *HeatmapCmd) Run(ctx *Context) error {
	month := c.Month
	if month == "" {
		month = ctx.Tracker.CurrentMonth()
	}
	counts, err := ctx.Tracker.DailyStats(month)
	if err != nil {
		return err
	}
	out, err := renderHeatmap(month, counts)
	if err != nil {
		return err
	}
	ctx.println(out)

	summary, err := ctx.Tracker.MonthlySummary(month)
	if err != nil {
		return err
	}
	ctx.printf("\n%d completions over %d active days\n", summary.Completions, summary.ActiveDays)
	return nil
}

// renderHeatmap lays a month out as a Monday-first calendar with one cell per
// day, shaded by its heat level
func renderHeatmap(month string, counts []int) (string, error) {
	first, err := time.Parse(constants.MonthFormat, month)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: %w", month, err)
	}

	var b strings.Builder
	b.WriteString(heatHeaderStyle.Render(first.Format("January 2006")))
	b.WriteString("\n Mo Tu We Th Fr Sa Su\n")

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))
	for i, count := range counts {
		cell := lipgloss.NewStyle().
			Background(heatColors[stats.HeatLevel(count)]).
			Render(fmt.Sprintf("%3d", i+1))
		b.WriteString(cell)
		if (offset+i+1)%7 == 0 && i < len(counts)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n less ")
	for _, color := range heatColors {
		b.WriteString(lipgloss.NewStyle().Background(color).Render("  "))
		b.WriteString(" ")
	}
	b.WriteString("more")
	return b.String(), nil
}

type ReportCmd struct {
	Month string `help:"Month in YYYY-MM format (default: current month)."`
	Raw   bool   `help:"Print the markdown source instead of rendering it."`
	Width int    `help:"Wrap width for the rendered report." default:"80"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	data, err := report.Build(ctx.Tracker, c.Month)
	if err != nil {
		return err
	}
	md := report.Markdown(data)
	if c.Raw {
		ctx.printf("%s", md)
		return nil
	}

	out, err := report.Render(md, ctx.Tracker.Theme(), c.Width)
	if err != nil {
		return err
	}
	ctx.printf("%s", out)
	return nil
}
