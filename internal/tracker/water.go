package tracker

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/validation"
)

func (s *Service) WaterLogs() models.WaterLogMap {
	return storage.Load(s.store, constants.KeyWaterLogs, models.WaterLogMap{})
}

// LogWater appends an intake entry on date (today when empty). Negative amounts
// correct earlier entries.
func (s *Service) LogWater(amount float64, date string) (models.WaterEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return models.WaterEntry{}, err
	}
	if amount == 0 {
		return models.WaterEntry{}, fmt.Errorf("%w: amount must not be zero", validation.ErrInvalid)
	}

	entry := models.WaterEntry{Amount: amount, Timestamp: s.now()}
	_, err = storage.Mutate(s.store, constants.KeyWaterLogs, models.WaterLogMap{}, func(logs models.WaterLogMap) (models.WaterLogMap, bool) {
		logs[day] = append(logs[day], entry)
		return logs, true
	})
	if err != nil {
		return models.WaterEntry{}, err
	}
	return entry, nil
}

// WaterTotal sums the entries of date (today when empty)
func (s *Service) WaterTotal(date string) (float64, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range s.WaterLogs()[day] {
		total += e.Amount
	}
	return total, nil
}

// WaterGoal returns the daily goal in ml. The goal is stored as a JSON string.
func (s *Service) WaterGoal() int {
	raw := storage.Load(s.store, constants.KeyWaterGoal, "")
	goal, err := strconv.Atoi(raw)
	if err != nil || goal <= 0 {
		return constants.DefaultWaterGoalML
	}
	return goal
}

func (s *Service) SetWaterGoal(goal int) error {
	if goal <= 0 {
		return fmt.Errorf("%w: water goal must be positive, got %d", validation.ErrInvalid, goal)
	}
	return s.store.Set(constants.KeyWaterGoal, strconv.Itoa(goal))
}

// WaterProgress returns how far total is towards goal, as a fraction capped at
// 1, and how far past the goal it has gone, also capped at 1.
func WaterProgress(total float64, goal int) (progress, overflow float64) {
	if goal <= 0 || total <= 0 {
		return 0, 0
	}
	g := float64(goal)
	progress = min(total/g, 1)
	if total > g {
		overflow = min((total-g)/g, 1)
	}
	return progress, overflow
}
