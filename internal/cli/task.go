package cli

import (
	"fmt"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/tracker"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a task."`
	List   TaskListCmd   `cmd:"" help:"List a day's tasks."`
	Edit   TaskEditCmd   `cmd:"" help:"Edit a task."`
	Done   TaskDoneCmd   `cmd:"" help:"Toggle a task's completed state."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Time     string `help:"Start time (HH:MM or h:mm AM/PM)."`
	Duration *int   `help:"Duration in minutes (default: 30)."`
	Priority string `help:"Priority." enum:"high,medium,low" default:"medium"`
	Notes    string `help:"Free-form notes."`
	Date     string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	task, err := ctx.Tracker.AddTask(models.Task{
		Title:    c.Title,
		Time:     c.Time,
		Duration: c.Duration,
		Priority: models.Priority(c.Priority),
		Notes:    c.Notes,
	}, c.Date)
	if err != nil {
		return err
	}
	ctx.printf("Added task: %s (id %s)\n", task.Title, task.ID)
	return nil
}

type TaskListCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	tasks, err := ctx.Tracker.ListTasks(c.Date)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		ctx.println("No tasks found.")
		return nil
	}

	for _, t := range tasks {
		span := optional(t.Time)
		if t.Time != "" {
			if end, err := tracker.TaskEndTime(t); err == nil {
				span = fmt.Sprintf("%s - %s", t.Time, end)
			}
		}
		ctx.printf("%s %-20s %-28s %-6s [%s]\n", checkmark(t.Completed), span, t.Title, t.Priority, t.ID)
		if t.Notes != "" {
			ctx.printf("    %s\n", t.Notes)
		}
	}
	return nil
}

type TaskEditCmd struct {
	ID       string  `arg:"" help:"Task id."`
	Date     string  `help:"Date in YYYY-MM-DD format (default: today)."`
	Title    *string `help:"New title."`
	Time     *string `help:"New start time."`
	Duration *int    `help:"New duration in minutes."`
	Priority *string `help:"New priority (high, medium or low)."`
	Notes    *string `help:"New notes."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	patch := models.TaskPatch{
		Title:    c.Title,
		Time:     c.Time,
		Duration: c.Duration,
		Notes:    c.Notes,
	}
	if c.Priority != nil {
		p := models.Priority(*c.Priority)
		patch.Priority = &p
	}
	if patch == (models.TaskPatch{}) {
		ctx.println("No changes specified.")
		return nil
	}

	task, err := ctx.Tracker.UpdateTask(c.ID, patch, c.Date)
	if err != nil {
		return err
	}
	ctx.printf("Updated task: %s\n", task.Title)
	return nil
}

type TaskDoneCmd struct {
	ID   string `arg:"" help:"Task id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	task, err := ctx.Tracker.ToggleTask(c.ID, c.Date)
	if err != nil {
		return err
	}
	if task.Completed {
		ctx.printf("✓ Completed: %s\n", task.Title)
	} else {
		ctx.printf("Reopened: %s\n", task.Title)
	}
	return nil
}

type TaskDeleteCmd struct {
	ID   string `arg:"" help:"Task id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	ok, err := ctx.confirm(c.Yes, "Delete this task?", "This cannot be undone.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.println("Delete cancelled.")
		return nil
	}
	if err := ctx.Tracker.DeleteTask(c.ID, c.Date); err != nil {
		return err
	}
	ctx.println("Task deleted.")
	return nil
}

type RoutineCmd struct {
	List  RoutineListCmd  `cmd:"" help:"List routine templates."`
	Apply RoutineApplyCmd `cmd:"" help:"Add a routine's tasks to a day."`
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *Context) error {
	for _, r := range ctx.Tracker.Routines() {
		ctx.printf("%-10s %s\n", r.ID, r.Title)
		for _, t := range r.Tasks {
			ctx.printf("    %-8s %-24s %s\n", t.Time, t.Title, formatMinutes(float64(t.Duration)))
		}
	}
	return nil
}

type RoutineApplyCmd struct {
	ID   string `arg:"" help:"Routine id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *RoutineApplyCmd) Run(ctx *Context) error {
	added, err := ctx.Tracker.ApplyRoutine(c.ID, c.Date)
	if err != nil {
		return err
	}
	ctx.printf("Added %d tasks from routine %s\n", len(added), c.ID)
	return nil
}
