package tracker

import (
	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
)

// Logs returns the full completion log
func (s *Service) Logs() models.LogMap {
	return storage.Load(s.store, constants.KeyLogs, models.LogMap{})
}

// LogHabitCompletion records habitID on date (today when empty). Recording the
// same habit twice on a date is a no-op.
func (s *Service) LogHabitCompletion(habitID, date string) error {
	day, err := s.resolveDate(date)
	if err != nil {
		return err
	}
	_, err = storage.Mutate(s.store, constants.KeyLogs, models.LogMap{}, func(logs models.LogMap) (models.LogMap, bool) {
		return logs, logs.Add(day, habitID)
	})
	return err
}

// RemoveHabitCompletion drops habitID from date (today when empty); removing a
// completion that is not there is a no-op.
func (s *Service) RemoveHabitCompletion(habitID, date string) error {
	day, err := s.resolveDate(date)
	if err != nil {
		return err
	}
	_, err = storage.Mutate(s.store, constants.KeyLogs, models.LogMap{}, func(logs models.LogMap) (models.LogMap, bool) {
		return logs, logs.Remove(day, habitID)
	})
	return err
}

// ToggleCompletion flips habitID on date and returns whether it is now completed
func (s *Service) ToggleCompletion(habitID, date string) (bool, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return false, err
	}

	var completed bool
	_, err = storage.Mutate(s.store, constants.KeyLogs, models.LogMap{}, func(logs models.LogMap) (models.LogMap, bool) {
		if logs.Remove(day, habitID) {
			completed = false
		} else {
			logs.Add(day, habitID)
			completed = true
		}
		return logs, true
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

// TodayCompletions returns the ids of habits completed today
func (s *Service) TodayCompletions() []string {
	ids := s.Logs()[s.Today()]
	if ids == nil {
		return []string{}
	}
	return ids
}
