package tracker

import (
	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/stats"
	"github.com/julianstephens/streaklit/internal/validation"
)

func (s *Service) CalculateStreak(habitID string) stats.Streak {
	return stats.CalculateStreak(s.Logs(), habitID, s.Today())
}

func (s *Service) HabitStats(habitID string) stats.HabitStats {
	return stats.ComputeHabitStats(s.Logs(), habitID, s.Today())
}

func (s *Service) OverallStats() stats.OverallStats {
	return stats.ComputeOverallStats(s.ListHabits(), s.Logs(), s.Today())
}

// CurrentMonth returns the local YYYY-MM month
func (s *Service) CurrentMonth() string {
	return s.now().Format(constants.MonthFormat)
}

func (s *Service) resolveMonth(month string) (string, error) {
	if month == "" {
		return s.CurrentMonth(), nil
	}
	if err := validation.ValidateMonth(month); err != nil {
		return "", err
	}
	return month, nil
}

// DailyStats returns per-day distinct completion counts for month (current month when empty)
func (s *Service) DailyStats(month string) ([]int, error) {
	m, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	return stats.DailyStats(s.Logs(), m)
}

func (s *Service) MonthlySummary(month string) (stats.MonthlySummary, error) {
	m, err := s.resolveMonth(month)
	if err != nil {
		return stats.MonthlySummary{}, err
	}
	return stats.SummarizeMonth(s.Logs(), m)
}

func (s *Service) HabitBreakdown(month string) ([]stats.HabitCount, error) {
	m, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	return stats.Breakdown(s.ListHabits(), s.Logs(), m)
}
