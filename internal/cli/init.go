package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/tracker"
)

type InitCmd struct {
	Routines bool `help:"Also write the built-in routines to routines.yaml for editing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized streaklit storage at: %s\n", ctx.Store.GetConfigPath())

	if !c.Routines {
		return nil
	}
	if ctx.ConfigDir == "" {
		return errNoConfigDir
	}
	path := filepath.Join(ctx.ConfigDir, constants.RoutinesFileName)
	if _, err := os.Stat(path); err == nil {
		ctx.printf("Keeping existing routines file: %s\n", path)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := tracker.WriteRoutines(path, ctx.Tracker.Routines()); err != nil {
		return err
	}
	ctx.printf("Wrote routine templates to: %s\n", path)
	return nil
}
