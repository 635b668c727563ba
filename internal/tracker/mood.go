package tracker

import (
	"strings"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/validation"
)

func (s *Service) MoodEntries() models.MoodMap {
	return storage.Load(s.store, constants.KeyMoodEntries, models.MoodMap{})
}

// SaveMood records the mood for date (today when empty), replacing any earlier entry
func (s *Service) SaveMood(mood, note, date string) (models.MoodEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return models.MoodEntry{}, err
	}
	entry := models.MoodEntry{
		Mood:      strings.TrimSpace(mood),
		Note:      strings.TrimSpace(note),
		Timestamp: s.now(),
	}
	if err := validation.Struct(entry); err != nil {
		return models.MoodEntry{}, err
	}

	_, err = storage.Mutate(s.store, constants.KeyMoodEntries, models.MoodMap{}, func(moods models.MoodMap) (models.MoodMap, bool) {
		moods[day] = entry
		return moods, true
	})
	if err != nil {
		return models.MoodEntry{}, err
	}
	return entry, nil
}

// Mood returns the entry for date (today when empty) and whether one exists
func (s *Service) Mood(date string) (models.MoodEntry, bool, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return models.MoodEntry{}, false, err
	}
	entry, ok := s.MoodEntries()[day]
	return entry, ok, nil
}
