package cli

import (
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
)

type SettingsCmd struct {
	Theme SettingsThemeCmd `cmd:"" help:"Set the color theme."`
	Name  SettingsNameCmd  `cmd:"" help:"Set your display name."`
	Show  SettingsShowCmd  `cmd:"" help:"Show current settings." default:"1"`
}

type SettingsThemeCmd struct {
	Theme string `arg:"" help:"Theme." enum:"light,dark,system"`
}

func (c *SettingsThemeCmd) Run(ctx *Context) error {
	if err := ctx.Tracker.SetTheme(models.Theme(c.Theme)); err != nil {
		return err
	}
	ctx.printf("Theme set to %s\n", c.Theme)
	return nil
}

type SettingsNameCmd struct {
	Name string `arg:"" help:"Display name."`
}

func (c *SettingsNameCmd) Run(ctx *Context) error {
	if err := ctx.Tracker.SetUserName(c.Name); err != nil {
		return err
	}
	ctx.println("Name updated.")
	return nil
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	ctx.println("Current Settings:")
	ctx.printf("  Name:        %s\n", optional(ctx.Tracker.UserName()))
	ctx.printf("  Theme:       %s\n", ctx.Tracker.Theme())
	ctx.printf("  Water goal:  %d ml\n", ctx.Tracker.WaterGoal())
	ctx.printf("  Store:       %s\n", ctx.Store.GetConfigPath())
	ctx.printf("  Log file:    %s\n", optional(logger.Path()))
	return nil
}
