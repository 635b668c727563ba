package cli

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/tui"
)

type WaterCmd struct {
	Log    WaterLogCmd    `cmd:"" help:"Log water intake in ml (negative to correct)."`
	Status WaterStatusCmd `cmd:"" help:"Show intake against the daily goal."`
	Goal   WaterGoalCmd   `cmd:"" help:"Show or set the daily goal in ml."`
}

type WaterLogCmd struct {
	Amount float64 `arg:"" help:"Amount in ml."`
	Date   string  `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *WaterLogCmd) Run(ctx *Context) error {
	if _, err := ctx.Tracker.LogWater(c.Amount, c.Date); err != nil {
		return err
	}
	total, err := ctx.Tracker.WaterTotal(c.Date)
	if err != nil {
		return err
	}
	ctx.printf("Logged %.0f ml, %.0f / %d ml so far\n", c.Amount, total, ctx.Tracker.WaterGoal())
	return nil
}

type WaterStatusCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *WaterStatusCmd) Run(ctx *Context) error {
	total, err := ctx.Tracker.WaterTotal(c.Date)
	if err != nil {
		return err
	}
	goal := ctx.Tracker.WaterGoal()
	progress, overflow := tracker.WaterProgress(total, goal)

	ctx.printf("%.0f / %d ml (%.0f%%)\n", total, goal, progress*100)
	if overflow > 0 {
		ctx.printf("Goal reached, %.0f%% over\n", overflow*100)
	} else if remaining := float64(goal) - total; remaining > 0 {
		ctx.printf("%.0f ml to go\n", remaining)
	}
	return nil
}

type WaterGoalCmd struct {
	ML int `arg:"" optional:"" help:"New daily goal in ml."`
}

func (c *WaterGoalCmd) Run(ctx *Context) error {
	if c.ML == 0 {
		ctx.printf("Daily water goal: %d ml\n", ctx.Tracker.WaterGoal())
		return nil
	}
	if err := ctx.Tracker.SetWaterGoal(c.ML); err != nil {
		return err
	}
	ctx.printf("Daily water goal set to %d ml\n", c.ML)
	return nil
}

type SleepCmd struct {
	Start SleepStartCmd `cmd:"" help:"Start a sleep session."`
	Stop  SleepStopCmd  `cmd:"" help:"Stop the running sleep session."`
	List  SleepListCmd  `cmd:"" help:"List sleep sessions."`
	Watch SleepWatchCmd `cmd:"" help:"Watch the running sleep session."`
}

type SleepStartCmd struct {
	Watch bool `help:"Open the live view after starting."`
}

func (c *SleepStartCmd) Run(ctx *Context) error {
	return startSession(ctx, models.SessionSleep, c.Watch)
}

type SleepStopCmd struct{}

func (c *SleepStopCmd) Run(ctx *Context) error {
	return stopSession(ctx, models.SessionSleep)
}

type SleepListCmd struct {
	Limit int `help:"Number of sessions to show." default:"10"`
}

func (c *SleepListCmd) Run(ctx *Context) error {
	return listSessions(ctx, models.SessionSleep, c.Limit)
}

type SleepWatchCmd struct{}

func (c *SleepWatchCmd) Run(ctx *Context) error {
	return watchSession(ctx, models.SessionSleep)
}

type FastCmd struct {
	Start FastStartCmd `cmd:"" help:"Start a fast (16h target)."`
	Stop  FastStopCmd  `cmd:"" help:"Stop the running fast."`
	List  FastListCmd  `cmd:"" help:"List fasting sessions."`
	Watch FastWatchCmd `cmd:"" help:"Watch the running fast."`
}

type FastStartCmd struct {
	Watch bool `help:"Open the live view after starting."`
}

func (c *FastStartCmd) Run(ctx *Context) error {
	return startSession(ctx, models.SessionFasting, c.Watch)
}

type FastStopCmd struct{}

func (c *FastStopCmd) Run(ctx *Context) error {
	return stopSession(ctx, models.SessionFasting)
}

type FastListCmd struct {
	Limit int `help:"Number of sessions to show." default:"10"`
}

func (c *FastListCmd) Run(ctx *Context) error {
	return listSessions(ctx, models.SessionFasting, c.Limit)
}

type FastWatchCmd struct{}

func (c *FastWatchCmd) Run(ctx *Context) error {
	return watchSession(ctx, models.SessionFasting)
}

var errNoActiveSession = errors.New("no session is running")

func sessionLabel(kind models.SessionKind) string {
	if kind == models.SessionFasting {
		return "fast"
	}
	return "sleep session"
}

// startSession refuses to open a second session of the same kind
func startSession(ctx *Context, kind models.SessionKind, watch bool) error {
	if active, ok := ctx.Tracker.ActiveSession(kind); ok {
		return fmt.Errorf("a %s is already running since %s", sessionLabel(kind), active.StartTime.Local().Format("Mon 3:04 PM"))
	}
	session, err := ctx.Tracker.StartSession(kind)
	if err != nil {
		return err
	}
	ctx.printf("Started %s at %s\n", sessionLabel(kind), session.StartTime.Local().Format("3:04 PM"))
	if watch {
		return watchSession(ctx, kind)
	}
	return nil
}

func stopSession(ctx *Context, kind models.SessionKind) error {
	active, ok := ctx.Tracker.ActiveSession(kind)
	if !ok {
		return fmt.Errorf("%w: start a %s first", errNoActiveSession, sessionLabel(kind))
	}
	ended, err := ctx.Tracker.EndSession(kind, active.ID)
	if err != nil {
		return err
	}
	printEnded(ctx, kind, ended)
	return nil
}

func printEnded(ctx *Context, kind models.SessionKind, s models.Session) {
	minutes := 0.0
	if s.Duration != nil {
		minutes = *s.Duration
	}
	ctx.printf("Stopped %s after %s\n", sessionLabel(kind), formatMinutes(minutes))
	if s.TargetDuration != nil {
		if minutes >= float64(*s.TargetDuration) {
			ctx.println("Target reached!")
		} else {
			ctx.printf("%s short of the %s target\n", formatMinutes(float64(*s.TargetDuration)-minutes), formatMinutes(float64(*s.TargetDuration)))
		}
	}
}

func listSessions(ctx *Context, kind models.SessionKind, limit int) error {
	sessions := ctx.Tracker.Sessions(kind)
	if len(sessions) == 0 {
		ctx.println("No sessions recorded.")
		return nil
	}

	now := time.Now()
	shown := 0
	for i := len(sessions) - 1; i >= 0 && (limit <= 0 || shown < limit); i-- {
		s := sessions[i]
		status := "running"
		if !s.Active() {
			status = s.EndTime.Local().Format("Jan 2 3:04 PM")
		}
		ctx.printf("%-16s -> %-16s %s\n",
			s.StartTime.Local().Format("Jan 2 3:04 PM"), status, formatMinutes(s.Elapsed(now).Minutes()))
		shown++
	}
	return nil
}

func watchSession(ctx *Context, kind models.SessionKind) error {
	active, ok := ctx.Tracker.ActiveSession(kind)
	if !ok {
		return fmt.Errorf("%w: start a %s first", errNoActiveSession, sessionLabel(kind))
	}

	final, err := tui.Run(tui.NewModel(ctx.Tracker, kind, active, time.Now()))
	if err != nil {
		return fmt.Errorf("live view failed: %w", err)
	}
	if final.Err() != nil {
		return final.Err()
	}
	if final.Stopped() {
		printEnded(ctx, kind, final.Session())
	}
	return nil
}

type MoodCmd struct {
	Set  MoodSetCmd  `cmd:"" help:"Record the mood for a day (overwrites)."`
	Show MoodShowCmd `cmd:"" help:"Show the mood for a day."`
	List MoodListCmd `cmd:"" help:"List recorded moods."`
}

type MoodSetCmd struct {
	Mood string `arg:"" help:"Mood emoji, or 1-8 to pick from the default set."`
	Note string `help:"Optional note."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *MoodSetCmd) Run(ctx *Context) error {
	entry, err := ctx.Tracker.SaveMood(resolveMood(c.Mood), c.Note, c.Date)
	if err != nil {
		return err
	}
	ctx.printf("Mood saved: %s %s\n", entry.Mood, entry.Note)
	return nil
}

type MoodShowCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *MoodShowCmd) Run(ctx *Context) error {
	entry, ok, err := ctx.Tracker.Mood(c.Date)
	if err != nil {
		return err
	}
	if !ok {
		ctx.println("No mood recorded.")
		return nil
	}
	ctx.printf("%s %s (%s)\n", entry.Mood, entry.Note, entry.Timestamp.Local().Format("3:04 PM"))
	return nil
}

type MoodListCmd struct{}

func (c *MoodListCmd) Run(ctx *Context) error {
	entries := ctx.Tracker.MoodEntries()
	if len(entries) == 0 {
		ctx.println("No moods recorded.")
		return nil
	}
	dates := make([]string, 0, len(entries))
	for d := range entries {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	for _, d := range slices.Backward(dates) {
		ctx.printf("%s  %s %s\n", d, entries[d].Mood, entries[d].Note)
	}
	return nil
}

// resolveMood maps "1".."8" onto the default mood set
func resolveMood(s string) string {
	if len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= len(constants.Moods) {
		return constants.Moods[s[0]-'1']
	}
	return s
}
