package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/tracker"
)

// ConfirmFunc asks the user a yes/no question
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Store     storage.Provider
	Data      *storage.Adapter
	Tracker   *tracker.Service
	ConfigDir string
	Out       io.Writer
	Confirm   ConfirmFunc
}

// NewContext wires the adapter and tracker over store
func NewContext(store storage.Provider, configDir string, opts ...tracker.Option) *Context {
	data := storage.NewAdapter(store)
	return &Context{
		Store:     store,
		Data:      data,
		Tracker:   tracker.New(data, opts...),
		ConfigDir: configDir,
		Out:       os.Stdout,
		Confirm:   huhConfirm,
	}
}

func huhConfirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// confirm skips the prompt when yes is set
func (c *Context) confirm(yes bool, title, description string) (bool, error) {
	if yes {
		return true, nil
	}
	return c.Confirm(title, description)
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

func habitLabel(h models.Habit) string {
	if h.Icon == "" {
		return h.Title
	}
	return h.Icon + " " + h.Title
}

// formatMinutes renders a minute count as "7h 05m"
func formatMinutes(minutes float64) string {
	total := int(minutes)
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

func checkmark(done bool) string {
	if done {
		return "✓"
	}
	return "·"
}

func optional(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
