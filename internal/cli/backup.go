package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streaklit/internal/backup"
	"github.com/julianstephens/streaklit/internal/constants"
)

var errNoConfigDir = errors.New("this needs a file-backed store with a config directory")

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

func (c *Context) backupManager() (*backup.Manager, error) {
	if c.ConfigDir == "" {
		return nil, errNoConfigDir
	}
	return backup.NewManager(c.Data, filepath.Join(c.ConfigDir, constants.BackupDirName)), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		ctx.printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	ctx.printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}

	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		possiblePath := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
		if _, err := os.Stat(possiblePath); err == nil {
			backupPath = possiblePath
		}
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	ok, err := ctx.confirm(c.Yes,
		fmt.Sprintf("Restore from %s?", filepath.Base(backupPath)),
		"This replaces all current data. A backup of the current data is created first.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.println("Restore cancelled.")
		return nil
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	ctx.printf("Created backup of current data: %s\n", filepath.Base(previous))
	ctx.println("✓ Data restored successfully!")
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	ok, err := ctx.confirm(c.Yes, "Delete all data?", "Habits, history, tasks and wellness records will be removed.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.println("Reset cancelled.")
		return nil
	}

	if mgr, err := ctx.backupManager(); err == nil {
		path, err := mgr.CreateBackup()
		if err != nil {
			return fmt.Errorf("failed to back up before reset: %w", err)
		}
		ctx.printf("Created backup: %s\n", filepath.Base(path))
	}

	if err := ctx.Tracker.ClearAllData(); err != nil {
		return err
	}
	ctx.println("All data cleared.")
	return nil
}
