package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/storage"
)

// snapshotVersion is bumped when the snapshot layout changes
const snapshotVersion = 1

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Snapshot is the on-disk form of a backup: every key with its raw JSON value
type Snapshot struct {
	Version   int                        `json:"version"`
	CreatedAt time.Time                  `json:"createdAt"`
	Data      map[string]json.RawMessage `json:"data"`
}

// Manager handles backup operations
type Manager struct {
	store     *storage.Adapter
	backupDir string
	now       func() time.Time
}

// NewManager creates a backup manager that snapshots store into backupDir
func NewManager(store *storage.Adapter, backupDir string) *Manager {
	return &Manager{
		store:     store,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// DirFor returns the backup directory that sits next to a store file
func DirFor(storePath string) string {
	return filepath.Join(filepath.Dir(storePath), constants.BackupDirName)
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes a snapshot of the current namespace and rotates old backups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup writes a snapshot. skipRotation keeps the pre-restore snapshot
// from evicting the backup that is about to be restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	snap, err := m.snapshot()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	backupPath, err := m.uniquePath(snap.CreatedAt)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("backup created", "path", backupPath, "keys", len(snap.Data))

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

func (m *Manager) snapshot() (Snapshot, error) {
	keys, err := m.store.Keys()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list keys: %w", err)
	}

	snap := Snapshot{
		Version:   snapshotVersion,
		CreatedAt: m.now(),
		Data:      make(map[string]json.RawMessage, len(keys)),
	}
	for _, key := range keys {
		raw, err := m.store.Raw(key)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %q: %w", key, err)
		}
		if !json.Valid(raw) {
			logger.Warn("skipping malformed value in backup", "key", key)
			continue
		}
		snap.Data[key] = raw
	}
	return snap, nil
}

// uniquePath names a backup after its minute, falling back to seconds and
// then a counter when that name is taken
func (m *Manager) uniquePath(ts time.Time) (string, error) {
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}
	exists := func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	path := name(ts.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}
	stamp := ts.Format("20060102-150405")
	path = name(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

var backupNamePattern = regexp.MustCompile(`^(\d{8}-\d{4}(?:\d{2})?)(?:-\d+)?$`)

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
		match := backupNamePattern.FindStringSubmatch(stamp)
		if match == nil {
			continue
		}
		layout := "20060102-1504"
		if len(match[1]) == len("20060102-150405") {
			layout = "20060102-150405"
		}
		timestamp, err := time.ParseInLocation(layout, match[1], time.Local)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	// Backups sharing a timestamp are ordered by name
	slices.SortStableFunc(backups, func(a, b BackupInfo) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

// rotateBackups removes the oldest backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("rotated backup", "path", backups[i].Path)
	}
	return nil
}

// ReadBackup loads and checks a snapshot file
func ReadBackup(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if snap.Version == 0 || snap.Version > snapshotVersion {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: unsupported version %d", snap.Version)
	}
	if snap.Data == nil {
		snap.Data = map[string]json.RawMessage{}
	}
	return snap, nil
}

// RestoreBackup replaces every key with the contents of a backup file. The
// current state is snapshotted first and that path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	snap, err := ReadBackup(backupPath)
	if err != nil {
		return "", err
	}

	current, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current data before restore: %w", err)
	}

	if err := m.store.Clear(); err != nil {
		return current, fmt.Errorf("failed to clear data before restore: %w", err)
	}
	provider := m.store.Provider()
	for key, raw := range snap.Data {
		if err := provider.Set(key, raw); err != nil {
			return current, fmt.Errorf("failed to restore %q: %w", key, err)
		}
	}

	logger.Info("backup restored", "path", backupPath, "keys", len(snap.Data), "previous", current)
	return current, nil
}
