package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/streaklit/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status and streaks."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit (its history is kept)."`
	Done   HabitDoneCmd   `cmd:"" help:"Mark a habit as done for a day."`
	Undo   HabitUndoCmd   `cmd:"" help:"Remove a habit completion for a day."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit completion for a day."`
	Stats  HabitStatsCmd  `cmd:"" help:"Show statistics for a habit."`
}

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Icon      string `help:"Emoji or icon name."`
	Frequency string `help:"How often the habit repeats." enum:"Daily,Weekly,Monthly" default:"Daily"`
	Time      string `help:"Reminder time (HH:MM or h:mm AM/PM)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit := models.Habit{
		Title:     c.Title,
		Icon:      c.Icon,
		Frequency: models.Frequency(c.Frequency),
	}
	if c.Time != "" {
		habit.Time = &c.Time
	}

	created, err := ctx.Tracker.CreateHabit(habit)
	if err != nil {
		return err
	}
	ctx.printf("Added habit: %s (id %s)\n", habitLabel(created), created.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.Tracker.ListHabits()
	if len(habits) == 0 {
		ctx.println("No habits found. Add one with 'streaklit habit add'.")
		return nil
	}

	logs := ctx.Tracker.Logs()
	today := ctx.Tracker.Today()
	for _, h := range habits {
		streak := ctx.Tracker.CalculateStreak(h.ID)
		when := string(h.Frequency)
		if h.Time != nil {
			when += " at " + *h.Time
		}
		ctx.printf("%s %-28s %-18s 🔥 %d (best %d)  [%s]\n",
			checkmark(logs.Has(today, h.ID)), habitLabel(h), when, streak.Current, streak.Longest, h.ID)
	}
	return nil
}

type HabitEditCmd struct {
	Habit     string  `arg:"" help:"Habit id or title."`
	Title     *string `help:"New title."`
	Icon      *string `help:"New icon."`
	Frequency *string `help:"New frequency (Daily, Weekly or Monthly)."`
	Time      *string `help:"New reminder time; empty clears it."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	patch := models.HabitPatch{Title: c.Title, Icon: c.Icon, Time: c.Time}
	if c.Frequency != nil {
		f := models.Frequency(*c.Frequency)
		patch.Frequency = &f
	}
	if patch == (models.HabitPatch{}) {
		ctx.println("No changes specified.")
		return nil
	}

	updated, err := ctx.Tracker.UpdateHabit(habit.ID, patch)
	if err != nil {
		return err
	}
	ctx.printf("Updated habit: %s\n", habitLabel(updated))
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	ok, err := ctx.confirm(c.Yes, fmt.Sprintf("Delete habit %q?", habit.Title), "Past completions stay in your history.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.println("Delete cancelled.")
		return nil
	}

	if err := ctx.Tracker.DeleteHabit(habit.ID); err != nil {
		return err
	}
	ctx.printf("Deleted habit: %s\n", habitLabel(habit))
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.LogHabitCompletion(habit.ID, c.Date); err != nil {
		return err
	}
	streak := ctx.Tracker.CalculateStreak(habit.ID)
	ctx.printf("✓ %s done. Current streak: %d\n", habitLabel(habit), streak.Current)
	return nil
}

type HabitUndoCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitUndoCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.RemoveHabitCompletion(habit.ID, c.Date); err != nil {
		return err
	}
	ctx.printf("Unmarked %s\n", habitLabel(habit))
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	done, err := ctx.Tracker.ToggleCompletion(habit.ID, c.Date)
	if err != nil {
		return err
	}
	if done {
		ctx.printf("✓ Marked %s\n", habitLabel(habit))
	} else {
		ctx.printf("Unmarked %s\n", habitLabel(habit))
	}
	return nil
}

type HabitStatsCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	JSON  bool   `help:"Print machine-readable JSON."`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	stats := ctx.Tracker.HabitStats(habit.ID)

	if c.JSON {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		ctx.println(string(out))
		return nil
	}

	ctx.printf("%s\n", habitLabel(habit))
	ctx.printf("  Total completions: %d\n", stats.TotalCompletions)
	ctx.printf("  Current streak:    %d\n", stats.CurrentStreak)
	ctx.printf("  Longest streak:    %d\n", stats.LongestStreak)
	ctx.printf("  Last 30 days:      %d%%\n", stats.CompletionRate)
	ctx.printf("  Last completion:   %s\n", optional(stats.LastCompletion))
	return nil
}
