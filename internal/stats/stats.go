package stats

import (
	"math"
	"slices"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

type HabitStats struct {
	TotalCompletions int `json:"totalCompletions"`
	CurrentStreak    int `json:"currentStreak"`
	LongestStreak    int `json:"longestStreak"`
	// CompletionRate is completions from today-30 through today over 30, as a percentage capped at 100
	CompletionRate int `json:"completionRate"`
	// LastCompletion is the latest completion date, empty when there is none
	LastCompletion string `json:"lastCompletion,omitempty"`
}

type OverallStats struct {
	TotalHabits      int `json:"totalHabits"`
	CompletedToday   int `json:"completedToday"`
	TodayPercentage  int `json:"todayPercentage"`
	TotalCompletions int `json:"totalCompletions"`
	LongestStreak    int `json:"longestStreak"`
}

// ComputeHabitStats summarizes one habit's history as of today
func ComputeHabitStats(logs models.LogMap, habitID, today string) HabitStats {
	dates := descending(logs.DatesFor(habitID))
	streak := StreakFromDates(dates, today)

	stats := HabitStats{
		TotalCompletions: len(dates),
		CurrentStreak:    streak.Current,
		LongestStreak:    streak.Longest,
	}
	if len(dates) > 0 {
		stats.LastCompletion = dates[0]
	}

	windowStart, err := utils.AddDays(today, -constants.CompletionRateWindowDays)
	if err != nil {
		return stats
	}
	recent := 0
	for _, d := range dates {
		if d >= windowStart && d <= today {
			recent++
		}
	}
	// both ends are inclusive, so a full month of completions can reach 31
	stats.CompletionRate = min(percent(recent, constants.CompletionRateWindowDays), 100)

	return stats
}

// ComputeOverallStats aggregates across every habit. Log entries for deleted
// habits still count towards TotalCompletions but not towards today's progress.
func ComputeOverallStats(habits []models.Habit, logs models.LogMap, today string) OverallStats {
	stats := OverallStats{TotalHabits: len(habits)}

	for _, ids := range logs {
		stats.TotalCompletions += len(ids)
	}

	for _, h := range habits {
		// only existing habits count, so orphaned ids cannot push today past 100%
		if logs.Has(today, h.ID) {
			stats.CompletedToday++
		}
		stats.LongestStreak = max(stats.LongestStreak, CalculateStreak(logs, h.ID, today).Longest)
	}

	if stats.TotalHabits > 0 {
		stats.TodayPercentage = percent(stats.CompletedToday, stats.TotalHabits)
	}
	return stats
}

// percent returns round(n / total * 100); total must be positive
func percent(n, total int) int {
	return int(math.Round(float64(n) / float64(total) * 100))
}

// distinct counts unique ids in a day's list
func distinct(ids []string) int {
	if len(ids) < 2 {
		return len(ids)
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return len(slices.Compact(sorted))
}
