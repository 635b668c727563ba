package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/storage"
)

func setupTestStore(t *testing.T) (*storage.Adapter, string) {
	t.Helper()

	tempDir := t.TempDir()
	provider := storage.NewSQLiteStore(filepath.Join(tempDir, "test.db"))
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { provider.Close() })

	adapter := storage.NewAdapter(provider)
	if err := adapter.Set(constants.KeyHabits, []map[string]string{{"id": "1", "title": "Read"}}); err != nil {
		t.Fatalf("failed to seed habits: %v", err)
	}
	if err := adapter.Set(constants.KeyWaterGoal, "2500"); err != nil {
		t.Fatalf("failed to seed water goal: %v", err)
	}
	return adapter, filepath.Join(tempDir, constants.BackupDirName)
}

func newTestManager(adapter *storage.Adapter, dir string, start time.Time, step time.Duration) *Manager {
	mgr := NewManager(adapter, dir)
	current := start
	mgr.now = func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
	return mgr
}

func TestCreateBackup(t *testing.T) {
	adapter, dir := setupTestStore(t)
	mgr := NewManager(adapter, dir)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != dir {
		t.Errorf("backup written to %s, want directory %s", backupPath, dir)
	}

	snap, err := ReadBackup(backupPath)
	if err != nil {
		t.Fatalf("ReadBackup failed: %v", err)
	}
	if len(snap.Data) != 2 {
		t.Fatalf("expected 2 keys in snapshot, got %d", len(snap.Data))
	}
	if string(snap.Data[constants.KeyWaterGoal]) != `"2500"` {
		t.Errorf("unexpected water goal in snapshot: %s", snap.Data[constants.KeyWaterGoal])
	}
}

func TestBackupRotation(t *testing.T) {
	adapter, dir := setupTestStore(t)
	start := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.Local)
	mgr := newTestManager(adapter, dir, start, time.Hour)

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	newest := start.Add(time.Duration(constants.MaxBackups+2) * time.Hour)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup is %v, want %v", backups[0].Timestamp, newest)
	}
	oldest := start.Add(3 * time.Hour)
	if !backups[len(backups)-1].Timestamp.Equal(oldest) {
		t.Errorf("oldest kept backup is %v, want %v", backups[len(backups)-1].Timestamp, oldest)
	}
}

func TestListBackups(t *testing.T) {
	adapter, dir := setupTestStore(t)
	mgr := NewManager(adapter, dir)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups on missing dir failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	files := []string{
		"streaklit-20261001-0800.json",
		"streaklit-20261003-0800.json",
		"streaklit-20261002-080000-1.json",
		"streaklit-notadate.json",
		"other-20261004-0800.json",
		"streaklit-20261005-0800.db",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	want := []string{
		"streaklit-20261003-0800.json",
		"streaklit-20261002-080000-1.json",
		"streaklit-20261001-0800.json",
	}
	if len(backups) != len(want) {
		t.Fatalf("expected %d backups, got %d", len(want), len(backups))
	}
	for i, name := range want {
		if filepath.Base(backups[i].Path) != name {
			t.Errorf("backup %d: got %s, want %s", i, filepath.Base(backups[i].Path), name)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	adapter, dir := setupTestStore(t)
	start := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.Local)
	mgr := newTestManager(adapter, dir, start, time.Minute)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if err := adapter.Set(constants.KeyWaterGoal, "4000"); err != nil {
		t.Fatal(err)
	}
	if err := adapter.Set(constants.KeyUserName, "Sam"); err != nil {
		t.Fatal(err)
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	if got := storage.Load(adapter, constants.KeyWaterGoal, ""); got != "2500" {
		t.Errorf("water goal after restore = %q, want 2500", got)
	}
	if _, err := adapter.Raw(constants.KeyUserName); err == nil {
		t.Error("key created after the backup should be gone after restore")
	}

	snap, err := ReadBackup(previous)
	if err != nil {
		t.Fatalf("pre-restore snapshot unreadable: %v", err)
	}
	if string(snap.Data[constants.KeyUserName]) != `"Sam"` {
		t.Errorf("pre-restore snapshot missing current state, got %v", snap.Data)
	}
}

func TestRestoreWithCorruptedBackup(t *testing.T) {
	adapter, dir := setupTestStore(t)
	mgr := NewManager(adapter, dir)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "streaklit-20261001-0800.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(bad); err == nil {
		t.Fatal("expected error restoring corrupted backup")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error restoring missing backup")
	}

	if got := storage.Load(adapter, constants.KeyWaterGoal, ""); got != "2500" {
		t.Errorf("data changed by failed restore: water goal = %q", got)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("failed restore should not snapshot, found %d backups", len(backups))
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	adapter, dir := setupTestStore(t)
	start := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.Local)
	mgr := newTestManager(adapter, dir, start, 0)

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	want := []string{
		"streaklit-20261001-0800.json",
		"streaklit-20261001-080000.json",
		"streaklit-20261001-080000-1.json",
		"streaklit-20261001-080000-2.json",
	}
	for _, name := range want {
		if !seen[filepath.Join(dir, name)] {
			t.Errorf("expected backup %s to exist", name)
		}
	}
}
