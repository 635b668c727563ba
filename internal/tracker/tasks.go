package tracker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/utils"
	"github.com/julianstephens/streaklit/internal/validation"
)

func (s *Service) Tasks() models.TaskMap {
	return storage.Load(s.store, constants.KeyTasks, models.TaskMap{})
}

// ListTasks returns the tasks of date (today when empty) ordered by their time
// string. The comparison is lexical, so "9:00 AM" sorts after "10:00".
func (s *Service) ListTasks(date string) ([]models.Task, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	tasks := slices.Clone(s.Tasks()[day])
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		return strings.Compare(a.Time, b.Time)
	})
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *Service) withTaskDefaults(task models.Task) models.Task {
	task.Title = strings.TrimSpace(task.Title)
	if task.ID == "" {
		task.ID = s.newID()
	}
	if task.Duration == nil {
		d := constants.DefaultTaskDurationMin
		task.Duration = &d
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	return task
}

// AddTask appends a task to date (today when empty), filling in the id, a 30
// minute duration and medium priority when they are missing.
func (s *Service) AddTask(task models.Task, date string) (models.Task, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return models.Task{}, err
	}
	task = s.withTaskDefaults(task)
	if err := validation.Struct(task); err != nil {
		return models.Task{}, err
	}

	_, err = storage.Mutate(s.store, constants.KeyTasks, models.TaskMap{}, func(tasks models.TaskMap) (models.TaskMap, bool) {
		tasks[day] = append(tasks[day], task)
		return tasks, true
	})
	if err != nil {
		return models.Task{}, err
	}
	logger.Debug("task added", "id", task.ID, "date", day)
	return task, nil
}

// updateTask applies fn to the task with id on day. fn returns the replacement
// task or an error that aborts the write.
func (s *Service) updateTask(id, date string, fn func(models.Task) (models.Task, error)) (models.Task, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return models.Task{}, err
	}

	var updated models.Task
	var opErr error
	_, err = storage.Mutate(s.store, constants.KeyTasks, models.TaskMap{}, func(tasks models.TaskMap) (models.TaskMap, bool) {
		list := tasks[day]
		idx := slices.IndexFunc(list, func(t models.Task) bool { return t.ID == id })
		if idx < 0 {
			opErr = fmt.Errorf("%w: %s on %s", ErrTaskNotFound, id, day)
			return tasks, false
		}
		next, err := fn(list[idx])
		if err != nil {
			opErr = err
			return tasks, false
		}
		list[idx] = next
		updated = next
		return tasks, true
	})
	if opErr != nil {
		return models.Task{}, opErr
	}
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

func (s *Service) UpdateTask(id string, patch models.TaskPatch, date string) (models.Task, error) {
	return s.updateTask(id, date, func(t models.Task) (models.Task, error) {
		merged := patch.Apply(t)
		merged.Title = strings.TrimSpace(merged.Title)
		if err := validation.Struct(merged); err != nil {
			return models.Task{}, err
		}
		return merged, nil
	})
}

// ToggleTask flips the completed flag of a task
func (s *Service) ToggleTask(id, date string) (models.Task, error) {
	return s.updateTask(id, date, func(t models.Task) (models.Task, error) {
		t.Completed = !t.Completed
		return t, nil
	})
}

func (s *Service) DeleteTask(id, date string) error {
	day, err := s.resolveDate(date)
	if err != nil {
		return err
	}
	var found bool
	_, err = storage.Mutate(s.store, constants.KeyTasks, models.TaskMap{}, func(tasks models.TaskMap) (models.TaskMap, bool) {
		before := len(tasks[day])
		tasks[day] = slices.DeleteFunc(tasks[day], func(t models.Task) bool { return t.ID == id })
		found = len(tasks[day]) != before
		return tasks, found
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s on %s", ErrTaskNotFound, id, day)
	}
	return nil
}

// TaskEndTime renders when a task ends, defaulting to a 30 minute duration
func TaskEndTime(task models.Task) (string, error) {
	d := constants.DefaultTaskDurationMin
	if task.Duration != nil {
		d = *task.Duration
	}
	return utils.EndTime(task.Time, d)
}
