package cli

import (
	"github.com/julianstephens/streaklit/internal/tracker"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	svc := ctx.Tracker
	today := svc.Today()

	greeting := "Today"
	if name := svc.UserName(); name != "" {
		greeting = "Hi " + name + ", here is today"
	}
	ctx.printf("%s (%s)\n\n", greeting, today)

	habits := svc.ListHabits()
	overall := svc.OverallStats()
	ctx.printf("Habits %d/%d (%d%%)\n", overall.CompletedToday, overall.TotalHabits, overall.TodayPercentage)
	logs := svc.Logs()
	for _, h := range habits {
		ctx.printf("  %s %s\n", checkmark(logs.Has(today, h.ID)), habitLabel(h))
	}

	tasks, err := svc.ListTasks("")
	if err != nil {
		return err
	}
	ctx.printf("\nTasks %d\n", len(tasks))
	for _, t := range tasks {
		ctx.printf("  %s %-8s %s\n", checkmark(t.Completed), optional(t.Time), t.Title)
	}

	total, err := svc.WaterTotal("")
	if err != nil {
		return err
	}
	goal := svc.WaterGoal()
	progress, _ := tracker.WaterProgress(total, goal)
	ctx.printf("\nWater %.0f / %d ml (%.0f%%)\n", total, goal, progress*100)

	if mood, ok, err := svc.Mood(""); err != nil {
		return err
	} else if ok {
		ctx.printf("Mood  %s %s\n", mood.Mood, mood.Note)
	}
	return nil
}
