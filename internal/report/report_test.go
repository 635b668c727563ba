package report

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/stats"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/tracker"
)

func newService(t *testing.T) *tracker.Service {
	t.Helper()
	provider := storage.NewMemoryStore()
	require.NoError(t, provider.Init())
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.Local)
	return tracker.New(storage.NewAdapter(provider), tracker.WithClock(func() time.Time { return now }))
}

func TestBuild(t *testing.T) {
	svc := newService(t)
	read, err := svc.CreateHabit(models.Habit{Title: "Read", Icon: "📚"})
	require.NoError(t, err)
	run, err := svc.CreateHabit(models.Habit{Title: "Run"})
	require.NoError(t, err)

	for _, d := range []string{"2026-10-13", "2026-10-14", "2026-10-15"} {
		require.NoError(t, svc.LogHabitCompletion(read.ID, d))
	}
	require.NoError(t, svc.LogHabitCompletion(run.ID, "2026-10-14"))
	require.NoError(t, svc.SetUserName("Sam"))

	data, err := Build(svc, "")
	require.NoError(t, err)

	assert.Equal(t, "2026-10", data.Month)
	assert.Equal(t, "Sam", data.UserName)
	assert.Equal(t, stats.MonthlySummary{Completions: 4, ActiveDays: 3}, data.Summary)
	assert.Len(t, data.Daily, 31)
	require.Len(t, data.Breakdown, 2)
	assert.Equal(t, read.ID, data.Breakdown[0].Habit.ID)
	assert.Equal(t, stats.Streak{Current: 3, Longest: 3}, data.Streaks[read.ID])

	_, err = Build(svc, "October")
	assert.Error(t, err)
}

func TestMarkdown(t *testing.T) {
	daily := make([]int, 31)
	daily[13] = 2
	daily[14] = 1
	data := Data{
		Month:    "2026-10",
		UserName: "Sam",
		Summary:  stats.MonthlySummary{Completions: 3, ActiveDays: 2},
		Daily:    daily,
		Breakdown: []stats.HabitCount{
			{Habit: models.Habit{ID: "1", Title: "Read | write", Icon: "📚"}, Count: 2},
			{Habit: models.Habit{ID: "2", Title: "Run"}, Count: 1},
		},
		Streaks: map[string]stats.Streak{"1": {Current: 2, Longest: 5}},
		Overall: stats.OverallStats{LongestStreak: 5},
	}

	md := Markdown(data)

	assert.True(t, strings.HasPrefix(md, "# October 2026\n"))
	assert.Contains(t, md, "Report for **Sam**.")
	assert.Contains(t, md, "- Active days: **2** of 31")
	assert.Contains(t, md, "- Best day: **Oct 14** with 2 habits")
	assert.Contains(t, md, `| 📚 Read \| write | 2 | 2 | 5 |`)
	assert.Contains(t, md, "| Run | 1 | 0 | 0 |")
}

func TestMarkdownEmptyMonth(t *testing.T) {
	md := Markdown(Data{Month: "2026-02", Daily: make([]int, 28)})

	assert.Contains(t, md, "# February 2026")
	assert.Contains(t, md, "No habits completed this month")
	assert.NotContains(t, md, "Best day")
	assert.NotContains(t, md, "Report for")
}

func TestRenderPlain(t *testing.T) {
	md := Markdown(Data{Month: "2026-10", Daily: make([]int, 31)})

	out, err := render(md, glamour.WithStandardStyle("notty"), glamour.WithWordWrap(80))
	require.NoError(t, err)
	assert.Contains(t, out, "October 2026")
	assert.Contains(t, out, "Summary")
}
