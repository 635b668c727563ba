package tracker

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/validation"
)

// ListHabits returns every habit in creation order
func (s *Service) ListHabits() []models.Habit {
	return storage.Load(s.store, constants.KeyHabits, []models.Habit{})
}

func (s *Service) GetHabit(id string) (models.Habit, error) {
	for _, h := range s.ListHabits() {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
}

// FindHabit resolves a habit by id, falling back to a case-insensitive title match
func (s *Service) FindHabit(ref string) (models.Habit, error) {
	habits := s.ListHabits()
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Title, strings.TrimSpace(ref)) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %q", ErrHabitNotFound, ref)
}

// CreateHabit validates and appends a habit. A missing id is derived from the
// creation time in milliseconds, bumped until it is unique.
func (s *Service) CreateHabit(habit models.Habit) (models.Habit, error) {
	habit.Title = strings.TrimSpace(habit.Title)
	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}
	if err := validation.Struct(habit); err != nil {
		return models.Habit{}, err
	}

	now := s.now()
	habit.CreatedAt = now

	var dupErr error
	_, err := storage.Mutate(s.store, constants.KeyHabits, []models.Habit{}, func(habits []models.Habit) ([]models.Habit, bool) {
		exists := func(id string) bool {
			return slices.ContainsFunc(habits, func(h models.Habit) bool { return h.ID == id })
		}
		if habit.ID == "" {
			ms := now.UnixMilli()
			for exists(strconv.FormatInt(ms, 10)) {
				ms++
			}
			habit.ID = strconv.FormatInt(ms, 10)
		} else if exists(habit.ID) {
			dupErr = fmt.Errorf("%w: %s", ErrDuplicateHabitID, habit.ID)
			return habits, false
		}
		return append(habits, habit), true
	})
	if dupErr != nil {
		return models.Habit{}, dupErr
	}
	if err != nil {
		return models.Habit{}, err
	}

	logger.Debug("habit created", "id", habit.ID, "title", habit.Title)
	return habit, nil
}

// UpdateHabit merges patch into the habit with the given id. Nothing is written
// when the id is unknown or the merged habit is invalid.
func (s *Service) UpdateHabit(id string, patch models.HabitPatch) (models.Habit, error) {
	var updated models.Habit
	var opErr error
	_, err := storage.Mutate(s.store, constants.KeyHabits, []models.Habit{}, func(habits []models.Habit) ([]models.Habit, bool) {
		idx := slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == id })
		if idx < 0 {
			opErr = fmt.Errorf("%w: %s", ErrHabitNotFound, id)
			return habits, false
		}
		merged := patch.Apply(habits[idx])
		merged.Title = strings.TrimSpace(merged.Title)
		if err := validation.Struct(merged); err != nil {
			opErr = err
			return habits, false
		}
		habits[idx] = merged
		updated = merged
		return habits, true
	})
	if opErr != nil {
		return models.Habit{}, opErr
	}
	if err != nil {
		return models.Habit{}, err
	}
	return updated, nil
}

// DeleteHabit removes the habit. Its completion history stays in the log map so
// past statistics are preserved.
func (s *Service) DeleteHabit(id string) error {
	var found bool
	_, err := storage.Mutate(s.store, constants.KeyHabits, []models.Habit{}, func(habits []models.Habit) ([]models.Habit, bool) {
		before := len(habits)
		habits = slices.DeleteFunc(habits, func(h models.Habit) bool { return h.ID == id })
		found = len(habits) != before
		return habits, found
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	logger.Debug("habit deleted", "id", id)
	return nil
}
