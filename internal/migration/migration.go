// Package migration applies the numbered SQL files that shape a SQLite store.
// The applied version is kept in the database's user_version pragma.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/streaklit/internal/logger"
)

// ErrSchemaTooNew means the database was migrated by a newer streaklit
var ErrSchemaTooNew = errors.New("database schema is newer than this version of streaklit")

// Migration is one NNN_name.sql file
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status compares the database with the embedded migrations
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

// UpToDate reports whether every migration has been applied
func (s Status) UpToDate() bool {
	return s.Current == s.Latest
}

type Runner struct {
	db   *sql.DB
	fsys fs.FS
}

// NewRunner reads migrations from the root of fsys
func NewRunner(db *sql.DB, fsys fs.FS) *Runner {
	return &Runner{db: db, fsys: fsys}
}

// Migrations parses every .sql file in version order. Versions start at 1 and
// must be unique.
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		m, err := parseName(name)
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(r.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		m.SQL = string(body)
		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", out[i-1].Name, out[i].Name, out[i].Version)
		}
	}
	return out, nil
}

// parseName splits "003_add_index.sql" into version 3 and name "add_index"
func parseName(file string) (Migration, error) {
	prefix, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || name == "" {
		return Migration{}, fmt.Errorf("migration %s must be named NNN_name.sql", file)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 1 {
		return Migration{}, fmt.Errorf("migration %s has an invalid version %q", file, prefix)
	}
	return Migration{Version: version, Name: name}, nil
}

func (r *Runner) currentVersion() (int, error) {
	var version int
	if err := r.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Status reports the applied version, the newest available one and what is left to apply
func (r *Runner) Status() (Status, error) {
	current, err := r.currentVersion()
	if err != nil {
		return Status{}, err
	}
	all, err := r.Migrations()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	for _, m := range all {
		st.Latest = m.Version
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	if current > st.Latest {
		return st, fmt.Errorf("%w (database %d, supported %d)", ErrSchemaTooNew, current, st.Latest)
	}
	return st, nil
}

// Check fails when the database is ahead of the embedded migrations
func (r *Runner) Check() error {
	_, err := r.Status()
	return err
}

// Up applies pending migrations in order, each in its own transaction, and
// returns how many ran
func (r *Runner) Up() (int, error) {
	st, err := r.Status()
	if err != nil {
		return 0, err
	}
	for i, m := range st.Pending {
		logger.Info("applying migration", "version", m.Version, "name", m.Name)
		if err := r.apply(m); err != nil {
			return i, err
		}
	}
	return len(st.Pending), nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: failed to begin: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	// pragmas do not take bind parameters
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("migration %d: failed to record version: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: failed to commit: %w", m.Version, err)
	}
	return nil
}
