package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/constants"
	apperrors "github.com/julianstephens/streaklit/internal/errors"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Store path: a SQLite database, a .json file or :memory:." type:"string" default:"${default_store}" env:"STREAKLIT_STORE"`
	Verbose bool   `name:"debug" help:"Mirror debug logs to stderr." env:"STREAKLIT_DEBUG"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize streaklit storage."`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's habits, tasks and wellness." default:"1"`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and completions."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show overall habit statistics."`
	Heatmap  cli.HeatmapCmd  `cmd:"" help:"Show a month's completion heatmap."`
	Report   cli.ReportCmd   `cmd:"" help:"Render the monthly report."`
	Task     cli.TaskCmd     `cmd:"" help:"Manage a day's tasks."`
	Routine  cli.RoutineCmd  `cmd:"" help:"List and apply routine templates."`
	Water    cli.WaterCmd    `cmd:"" help:"Track water intake."`
	Sleep    cli.SleepCmd    `cmd:"" help:"Track sleep sessions."`
	Fast     cli.FastCmd     `cmd:"" help:"Track fasting sessions."`
	Mood     cli.MoodCmd     `cmd:"" help:"Track your daily mood."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage backups."`
	Reset    cli.ResetCmd    `cmd:"" help:"Delete all data."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
}

// loadEnv reads <configdir>/.env before flags are parsed; variables already set win
func loadEnv(configDir string) {
	err := godotenv.Load(filepath.Join(configDir, constants.EnvFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", constants.EnvFileName, err)
	}
}

func main() {
	defaultStore, err := utils.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	loadEnv(filepath.Dir(defaultStore))

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local-first habit, task and wellness tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"default_store": defaultStore,
		},
	)

	storePath, err := utils.ExpandPath(CLI.Store)
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir := ""
	logDir := filepath.Dir(defaultStore)
	if storePath != storage.MemoryPath {
		configDir = filepath.Dir(storePath)
		logDir = configDir
	}
	if err := logger.Init(logger.Config{Dir: logDir, Debug: CLI.Verbose}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Close()

	var opts []tracker.Option
	if configDir != "" {
		routines, err := tracker.LoadRoutines(filepath.Join(configDir, constants.RoutinesFileName))
		if err != nil {
			apperrors.Fatal(err)
		}
		opts = append(opts, tracker.WithRoutines(routines))
	}

	store := storage.NewProvider(storePath)
	defer store.Close()

	// init prepares its own storage; the in-memory store never needs it
	if ctx.Command() != "init" {
		load := store.Load
		if storePath == storage.MemoryPath {
			load = store.Init
		}
		if err := load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, configDir, opts...)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
