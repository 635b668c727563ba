package tracker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/validation"
)

// RoutineTask is one entry of a routine template
type RoutineTask struct {
	Title    string `yaml:"title"`
	Time     string `yaml:"time"`
	Duration int    `yaml:"duration"`
}

// Routine is a named set of tasks that can be added to a day in one step
type Routine struct {
	ID    string        `yaml:"id"`
	Title string        `yaml:"title"`
	Icon  string        `yaml:"icon"`
	Color string        `yaml:"color"`
	Tasks []RoutineTask `yaml:"tasks"`
}

type routinesFile struct {
	Routines []Routine `yaml:"routines"`
}

func DefaultRoutines() []Routine {
	return []Routine{
		{
			ID:    "morning",
			Title: "Morning Routine",
			Icon:  "sunny",
			Color: "#F59E0B",
			Tasks: []RoutineTask{
				{Title: "Wake up & Stretch", Time: "07:00", Duration: 15},
				{Title: "Breakfast", Time: "07:30", Duration: 30},
				{Title: "Plan the day", Time: "08:00", Duration: 15},
			},
		},
		{
			ID:    "evening",
			Title: "Evening Routine",
			Icon:  "moon",
			Color: "#818CF8",
			Tasks: []RoutineTask{
				{Title: "Review the day", Time: "20:00", Duration: 15},
				{Title: "Dinner", Time: "20:30", Duration: 30},
				{Title: "Wind down", Time: "21:30", Duration: 30},
			},
		},
		{
			ID:    "work",
			Title: "Work Routine",
			Icon:  "briefcase",
			Color: "#6366F1",
			Tasks: []RoutineTask{
				{Title: "Check emails", Time: "09:00", Duration: 30},
				{Title: "Focus work", Time: "10:00", Duration: 120},
				{Title: "Lunch break", Time: "12:00", Duration: 60},
			},
		},
		{
			ID:    "study",
			Title: "Study Routine",
			Icon:  "book",
			Color: "#34D399",
			Tasks: []RoutineTask{
				{Title: "Review notes", Time: "16:00", Duration: 30},
				{Title: "Deep study", Time: "17:00", Duration: 90},
				{Title: "Practice problems", Time: "19:00", Duration: 60},
			},
		},
	}
}

// LoadRoutines returns the built-in routines merged with the templates in the
// YAML file at path. A template whose id matches a built-in replaces it, any
// other template is appended. A missing file yields the built-ins.
func LoadRoutines(path string) ([]Routine, error) {
	routines := DefaultRoutines()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return routines, nil
		}
		return nil, fmt.Errorf("failed to read routines file: %w", err)
	}

	var file routinesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse routines file %s: %w", path, err)
	}

	for _, r := range file.Routines {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: routine %q in %s has no id", validation.ErrInvalid, r.Title, path)
		}
		for _, t := range r.Tasks {
			if _, err := validation.ParseTimeOfDay(t.Time); err != nil {
				return nil, fmt.Errorf("routine %s: %w", r.ID, err)
			}
		}
		idx := slices.IndexFunc(routines, func(existing Routine) bool { return existing.ID == r.ID })
		if idx >= 0 {
			routines[idx] = r
		} else {
			routines = append(routines, r)
		}
	}

	logger.Debug("routines loaded", "path", path, "count", len(routines))
	return routines, nil
}

// WriteRoutines saves routines in the format LoadRoutines reads
func WriteRoutines(path string, routines []Routine) error {
	data, err := yaml.Marshal(routinesFile{Routines: routines})
	if err != nil {
		return fmt.Errorf("failed to encode routines: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write routines file: %w", err)
	}
	return nil
}

func (s *Service) Routines() []Routine {
	return s.routines
}

// ApplyRoutine appends every task of the routine to date (today when empty)
func (s *Service) ApplyRoutine(id, date string) ([]models.Task, error) {
	idx := slices.IndexFunc(s.routines, func(r Routine) bool { return r.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrRoutineNotFound, id)
	}
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	routine := s.routines[idx]
	added := make([]models.Task, 0, len(routine.Tasks))
	for _, rt := range routine.Tasks {
		duration := rt.Duration
		task := s.withTaskDefaults(models.Task{
			Title:    rt.Title,
			Time:     rt.Time,
			Duration: &duration,
		})
		if err := validation.Struct(task); err != nil {
			return nil, fmt.Errorf("routine %s: %w", id, err)
		}
		added = append(added, task)
	}

	_, err = storage.Mutate(s.store, constants.KeyTasks, models.TaskMap{}, func(tasks models.TaskMap) (models.TaskMap, bool) {
		tasks[day] = append(tasks[day], added...)
		return tasks, true
	})
	if err != nil {
		return nil, err
	}
	logger.Info("routine applied", "routine", id, "date", day, "tasks", len(added))
	return added, nil
}
